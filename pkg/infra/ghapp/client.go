package ghapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/interfaces"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/logging"
)

type Client struct {
	appID   types.GitHubAppID
	pem     types.GitHubAppPrivateKey
	appName string
}

var _ interfaces.GitHubApp = (*Client)(nil)

type Option func(*Client)

// WithAppName sets the app's public slug, used to build the install URL.
func WithAppName(name string) Option {
	return func(x *Client) {
		x.appName = name
	}
}

func New(appID types.GitHubAppID, pem types.GitHubAppPrivateKey, options ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	client := &Client{
		appID:   appID,
		pem:     pem,
		appName: "securebot",
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (x *Client) buildAppClient() (*github.Client, error) {
	tr := http.DefaultTransport
	itr, err := ghinstallation.NewAppsTransport(tr, int64(x.appID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create app transport")
	}
	return github.NewClient(&http.Client{Transport: itr}), nil
}

func (x *Client) buildInstallClient(installID types.GitHubAppInstallID) (*github.Client, error) {
	tr := http.DefaultTransport
	itr, err := ghinstallation.New(tr, int64(x.appID), int64(installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create installation transport")
	}
	return github.NewClient(&http.Client{Transport: itr}), nil
}

// InstallURL returns the public page for installing the app, used as the
// remedy for ErrNotAuthorized.
func (x *Client) InstallURL() string {
	return fmt.Sprintf("https://github.com/apps/%s/installations/new", x.appName)
}

func (x *Client) ListInstallations(ctx context.Context) ([]*model.Installation, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return nil, err
	}

	var allInstalls []*model.Installation
	opts := &github.ListOptions{PerPage: 100}

	for {
		result, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return nil, mapHostError(err, "failed to list installations")
		}

		for _, inst := range result {
			allInstalls = append(allInstalls, &model.Installation{
				ID:          types.GitHubAppInstallID(inst.GetID()),
				Account:     inst.GetAccount().GetLogin(),
				AccountType: inst.GetAccount().GetType(),
				CreatedAt:   inst.GetCreatedAt().Time,
				UpdatedAt:   inst.GetUpdatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allInstalls, nil
}

func (x *Client) ListInstallationRepos(ctx context.Context, installID types.GitHubAppInstallID) ([]*model.Repository, error) {
	client, err := x.buildInstallClient(installID)
	if err != nil {
		return nil, err
	}

	var allRepos []*model.Repository
	opts := &github.ListOptions{PerPage: 100}

	for {
		result, resp, err := client.Apps.ListRepos(ctx, opts)
		if err != nil {
			return nil, mapHostError(err, "failed to list installation repos",
				goerr.V("installID", installID),
			)
		}

		for _, repo := range result.Repositories {
			if repo.GetArchived() || repo.GetDisabled() {
				continue
			}
			allRepos = append(allRepos, &model.Repository{
				ID:             types.GitHubRepoID(repo.GetID()),
				Owner:          repo.GetOwner().GetLogin(),
				Name:           repo.GetName(),
				FullName:       repo.GetFullName(),
				DefaultBranch:  types.BranchName(repo.GetDefaultBranch()),
				CloneURL:       repo.GetCloneURL(),
				HTMLURL:        repo.GetHTMLURL(),
				Private:        repo.GetPrivate(),
				InstallationID: installID,
				CreatedAt:      repo.GetCreatedAt().Time,
				UpdatedAt:      repo.GetUpdatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.From(ctx).Info("Listed installation repos",
		slog.Int("count", len(allRepos)),
		slog.Any("installID", installID),
	)

	return allRepos, nil
}

func (x *Client) CreateInstallationToken(ctx context.Context, installID types.GitHubAppInstallID) (types.InstallationToken, time.Time, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return "", time.Time{}, err
	}

	token, _, err := client.Apps.CreateInstallationToken(ctx, int64(installID), nil)
	if err != nil {
		return "", time.Time{}, mapHostError(err, "failed to create installation token",
			goerr.V("installID", installID),
		)
	}

	return types.InstallationToken(token.GetToken()), token.GetExpiresAt().Time, nil
}

func (x *Client) CreatePullRequest(ctx context.Context, installID types.GitHubAppInstallID, input *interfaces.CreatePullRequestInput) (*model.ChangeRequest, error) {
	client, err := x.buildInstallClient(installID)
	if err != nil {
		return nil, err
	}

	pr, _, err := client.PullRequests.Create(ctx, input.Owner, input.Repo, &github.NewPullRequest{
		Title: github.String(input.Title),
		Body:  github.String(input.Body),
		Head:  github.String(string(input.Head)),
		Base:  github.String(string(input.Base)),
	})
	if err != nil {
		return nil, mapHostError(err, "failed to create pull request",
			goerr.V("owner", input.Owner),
			goerr.V("repo", input.Repo),
			goerr.V("head", input.Head),
		)
	}

	logging.From(ctx).Info("Created pull request",
		slog.String("repo", input.Owner+"/"+input.Repo),
		slog.Int("number", pr.GetNumber()),
		slog.String("url", pr.GetHTMLURL()),
	)

	return &model.ChangeRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		State:  pr.GetState(),
		URL:    pr.GetHTMLURL(),
		Branch: input.Head,
	}, nil
}

// mapHostError converts go-github errors to the pipeline's error taxonomy.
// Raw host payloads stay inside goerr values and never reach callers as-is.
func mapHostError(err error, msg string, values ...goerr.Option) error {
	switch hostErr := err.(type) {
	case *github.RateLimitError:
		values = append(values,
			goerr.V("rate_reset", hostErr.Rate.Reset.Time),
			goerr.V("retry_after_seconds", int(time.Until(hostErr.Rate.Reset.Time).Seconds())),
		)
		return goerr.Wrap(types.ErrRateLimited, msg, values...)

	case *github.AbuseRateLimitError:
		if hostErr.RetryAfter != nil {
			values = append(values, goerr.V("retry_after_seconds", int(hostErr.RetryAfter.Seconds())))
		}
		return goerr.Wrap(types.ErrRateLimited, msg, values...)

	case *github.ErrorResponse:
		if hostErr.Response != nil {
			values = append(values, goerr.V("status", hostErr.Response.StatusCode))
			switch hostErr.Response.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return goerr.Wrap(types.ErrAuthorizationExpired, msg, values...)
			case http.StatusNotFound:
				return goerr.Wrap(types.ErrNotFound, msg, values...)
			}
		}
	}

	return goerr.Wrap(err, msg, values...)
}

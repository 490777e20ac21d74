package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// authorize resolves the tenant's live installation. A missing installation
// is reported as ErrNotAuthorized carrying the install URL as the remedy.
func (x *UseCase) authorize(ctx context.Context, tenant string) (*model.Installation, error) {
	if tenant == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "tenant account is empty")
	}

	inst, err := x.directory.ResolveInstallation(ctx, tenant)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrNotAuthorized, "app is not installed for this account",
				goerr.V("account", tenant),
				goerr.V("install_url", x.clients.GitHubApp().InstallURL()),
			)
		}
		return nil, err
	}

	return inst, nil
}

// CheckInstallation reports whether the app is installed for the tenant. Not
// installed is a normal answer, not an error; only upstream unavailability
// fails.
func (x *UseCase) CheckInstallation(ctx context.Context, tenant string) (*model.InstallationStatus, error) {
	inst, err := x.authorize(ctx, tenant)
	if err != nil {
		if errors.Is(err, types.ErrNotAuthorized) {
			return &model.InstallationStatus{
				Installed:  false,
				InstallURL: x.clients.GitHubApp().InstallURL(),
			}, nil
		}
		return nil, err
	}

	return x.listingsFor(ctx, inst)
}

// ListRepositories lists the repositories the tenant's installation grants
// access to, each with its security status placeholder.
func (x *UseCase) ListRepositories(ctx context.Context, tenant string) (*model.InstallationStatus, error) {
	inst, err := x.authorize(ctx, tenant)
	if err != nil {
		if errors.Is(err, types.ErrNotAuthorized) {
			return &model.InstallationStatus{
				Installed:  false,
				InstallURL: x.clients.GitHubApp().InstallURL(),
			}, nil
		}
		return nil, err
	}

	return x.listingsFor(ctx, inst)
}

func (x *UseCase) listingsFor(ctx context.Context, inst *model.Installation) (*model.InstallationStatus, error) {
	repos, err := x.directory.ReposForInstallation(ctx, inst.ID)
	if err != nil {
		return nil, err
	}

	listings := make([]*model.RepositoryListing, 0, len(repos))
	for _, repo := range repos {
		listings = append(listings, &model.RepositoryListing{
			Repository:     repo,
			SecurityStatus: x.scans.Status(repo.ID),
		})
	}

	return &model.InstallationStatus{
		Installed:    true,
		Installation: inst,
		Repositories: listings,
	}, nil
}

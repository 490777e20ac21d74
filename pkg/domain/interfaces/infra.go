package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHubApp Remediator AuditSink

import (
	"context"
	"time"

	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// GitHubApp is the outbound host API surface of the pipeline. Implementations
// must map host errors to the error taxonomy in pkg/domain/types and never
// leak raw host payloads.
type GitHubApp interface {
	// ListInstallations lists all live installations of the app.
	ListInstallations(ctx context.Context) ([]*model.Installation, error)

	// ListInstallationRepos lists repositories the installation grants access
	// to. Returned repositories carry the installation ID.
	ListInstallationRepos(ctx context.Context, installID types.GitHubAppInstallID) ([]*model.Repository, error)

	// CreateInstallationToken mints a short-lived credential scoped to the
	// installation. Callers must not cache it beyond a single pipeline run.
	CreateInstallationToken(ctx context.Context, installID types.GitHubAppInstallID) (types.InstallationToken, time.Time, error)

	// CreatePullRequest opens a change request from head to the repository's
	// default branch.
	CreatePullRequest(ctx context.Context, installID types.GitHubAppInstallID, input *CreatePullRequestInput) (*model.ChangeRequest, error)

	// InstallURL returns the URL a tenant visits to install the app.
	InstallURL() string
}

type CreatePullRequestInput struct {
	Owner string
	Repo  string
	Title string
	Body  string
	Head  types.BranchName
	Base  types.BranchName
}

// Remediator is the pluggable scan-and-fix capability. Scan must not mutate
// the workspace and must be deterministic for a fixed revision; Fix may
// mutate it in place and must never apply a fix whose issue key is not in the
// input set.
type Remediator interface {
	Ready(ctx context.Context) error
	Scan(ctx context.Context, dir string) ([]model.Issue, error)
	Fix(ctx context.Context, dir string, issues []model.Issue) (*model.FixOutcome, error)
}

// AuditSink records finished pipeline runs. Optional; failures are logged and
// never fail the run.
type AuditSink interface {
	Insert(ctx context.Context, record *model.RunRecord) error
}

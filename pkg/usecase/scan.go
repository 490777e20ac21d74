package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/logging"
)

// Scan synchronizes the repository's workspace and runs the engine's scan
// over it. The workspace is not mutated.
func (x *UseCase) Scan(ctx context.Context, repoID types.GitHubRepoID, tenant string) (*model.ScanResult, error) {
	inst, err := x.authorize(ctx, tenant)
	if err != nil {
		return nil, err
	}

	repo, err := x.resolveForTenant(ctx, repoID, inst)
	if err != nil {
		return nil, err
	}

	if err := x.clients.Remediator().Ready(ctx); err != nil {
		return nil, err
	}

	token, _, err := x.clients.GitHubApp().CreateInstallationToken(ctx, inst.ID)
	if err != nil {
		return nil, err
	}

	ws, err := x.workspaces.Acquire(ctx, repo, token)
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	issues, err := x.clients.Remediator().Scan(ctx, ws.Path())
	if err != nil {
		return nil, err
	}

	result := &model.ScanResult{
		RepoID:    repo.ID,
		Revision:  ws.Revision(),
		Issues:    issues,
		ScannedAt: time.Now().UTC(),
	}
	x.scans.Record(repo.ID, result.ScannedAt, len(issues))

	logging.From(ctx).Info("scan finished",
		slog.String("repo", repo.FullName),
		slog.String("revision", string(result.Revision)),
		slog.Int("issues", len(issues)),
	)

	return result, nil
}

// resolveForTenant locates the repository and checks it belongs to the
// tenant's installation. A repository owned by another installation is
// reported as not found for this tenant, never resolved against the other
// tenant's authorization.
func (x *UseCase) resolveForTenant(ctx context.Context, repoID types.GitHubRepoID, inst *model.Installation) (*model.Repository, error) {
	repo, owner, err := x.directory.FindRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}

	if owner.ID != inst.ID {
		return nil, goerr.Wrap(types.ErrNotFound, "repository is not accessible to this account",
			goerr.V("repo_id", repoID),
			goerr.V("account", inst.Account),
		)
	}

	return repo, nil
}

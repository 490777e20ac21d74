package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/interfaces"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/logging"
	"github.com/hardenlab/securebot/pkg/workspace"
)

// RemediateAndPublish runs the full pipeline for one repository:
//
//	Authorizing -> WorkspaceReady -> Scanned -> Fixing -> Committed -> Published
//
// Stages are strictly sequential and forward-only. NoIssuesFound,
// NoFixesApplicable and NoChanges are successful early terminals that
// short-circuit the rest; any stage error aborts the run, releases the
// repository lock and leaves the workspace at its last synchronized state.
// The only in-run retry is a single re-mint on an expired credential, applied
// to the one failed host call.
func (x *UseCase) RemediateAndPublish(ctx context.Context, input *model.RemediateInput) (*model.PipelineResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	runID := types.NewRunID()
	startedAt := time.Now().UTC()

	logger := logging.From(ctx).With(
		slog.String("run_id", runID.String()),
		slog.Any("repo_id", input.RepoID),
		slog.String("tenant", input.Tenant),
	)
	ctx = logging.With(ctx, logger)

	ctx, cancel := context.WithTimeoutCause(ctx, x.timeout, types.ErrTimeout)
	defer cancel()

	result, err := x.runPipeline(ctx, runID, input)
	if err != nil && errors.Is(context.Cause(ctx), types.ErrTimeout) {
		err = goerr.Wrap(types.ErrTimeout, "remediation run aborted",
			goerr.V("timeout", x.timeout),
			goerr.V("run_id", runID),
		)
	}

	finishedAt := time.Now().UTC()
	if result != nil {
		result.StartedAt = startedAt
		result.FinishedAt = finishedAt
	}

	x.recordRun(ctx, runID, input, result, err, startedAt, finishedAt)

	if err != nil {
		logger.Error("remediation run failed", slog.Any("error", err))
		return nil, err
	}

	logger.Info("remediation run finished",
		slog.String("status", string(result.Status)),
		slog.Duration("elapsed", finishedAt.Sub(startedAt)),
	)
	return result, nil
}

func (x *UseCase) runPipeline(ctx context.Context, runID types.RunID, input *model.RemediateInput) (*model.PipelineResult, error) {
	logger := logging.From(ctx)

	// Authorizing
	inst, err := x.authorize(ctx, input.Tenant)
	if err != nil {
		return nil, err
	}

	repo, err := x.resolveForTenant(ctx, input.RepoID, inst)
	if err != nil {
		return nil, err
	}

	// Probe the engine before touching the workspace: a misconfigured engine
	// must not cost a clone.
	if err := x.clients.Remediator().Ready(ctx); err != nil {
		return nil, err
	}

	token, _, err := x.clients.GitHubApp().CreateInstallationToken(ctx, inst.ID)
	if err != nil {
		return nil, err
	}

	// WorkspaceReady
	ws, err := x.workspaces.Acquire(ctx, repo, token)
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	result := &model.PipelineResult{
		RunID:      runID,
		Repository: repo,
	}

	// Scanned
	issues, err := x.clients.Remediator().Scan(ctx, ws.Path())
	if err != nil {
		return nil, err
	}

	scan := &model.ScanResult{
		RepoID:    repo.ID,
		Revision:  ws.Revision(),
		Issues:    issues,
		ScannedAt: time.Now().UTC(),
	}
	x.scans.Record(repo.ID, scan.ScannedAt, len(issues))
	result.Scan = scan

	if len(issues) == 0 {
		result.Status = model.StatusNoIssuesFound
		return result, nil
	}
	logger.Info("issues found", slog.Int("count", len(issues)))

	// Fixing. From here the engine may have mutated the tree, so every exit
	// that does not publish must discard back to the synchronized revision.
	outcome, err := x.clients.Remediator().Fix(ctx, ws.Path(), issues)
	if err != nil {
		return nil, x.discardAfter(ctx, ws, err)
	}
	result.Fix = outcome

	if len(outcome.Applied) == 0 {
		if err := ws.Discard(); err != nil {
			return nil, err
		}
		result.Status = model.StatusNoFixesApplicable
		return result, nil
	}
	logger.Info("fixes applied",
		slog.Int("applied", len(outcome.Applied)),
		slog.Int("skipped", len(outcome.Skipped)),
		slog.String("success_rate", outcome.SuccessRate(len(issues))),
	)

	// Committed
	branch := model.FixBranchName(runID, time.Now())
	if err := ws.CreateBranch(branch); err != nil {
		return nil, x.discardAfter(ctx, ws, err)
	}

	hasChanges, err := ws.CommitAll(model.FixCommitMessage(scan, outcome))
	if err != nil {
		return nil, x.discardAfter(ctx, ws, err)
	}
	if !hasChanges {
		// Fixes produced no net diff (e.g. already-fixed files). Normal
		// terminal; never open a change request with an empty diff.
		if err := ws.Discard(); err != nil {
			return nil, err
		}
		result.Status = model.StatusNoChanges
		return result, nil
	}

	// Published
	token, err = x.pushWithRetry(ctx, ws, branch, inst.ID, token)
	if err != nil {
		return nil, x.discardAfter(ctx, ws, err)
	}

	changeReq, err := x.openChangeRequest(ctx, inst.ID, repo, branch, scan, outcome)
	if err != nil {
		return nil, x.discardAfter(ctx, ws, err)
	}
	result.ChangeRequest = changeReq

	// The fixes live on the pushed branch; return the cached checkout to the
	// synchronized default branch for the next run.
	if err := ws.Discard(); err != nil {
		return nil, err
	}

	result.Status = model.StatusPublished
	return result, nil
}

// pushWithRetry pushes the fix branch, re-minting the credential and retrying
// exactly once when it expired mid-run. It returns the credential that
// succeeded so the change-request call uses a live one.
func (x *UseCase) pushWithRetry(ctx context.Context, ws *workspace.Workspace, branch types.BranchName, installID types.GitHubAppInstallID, token types.InstallationToken) (types.InstallationToken, error) {
	err := ws.Push(ctx, branch, token)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, types.ErrAuthorizationExpired) {
		return token, goerr.Wrap(types.ErrPublishFailed, "push failed", goerr.V("cause", err.Error()))
	}

	logging.From(ctx).Warn("credential expired mid-run, re-minting once")
	fresh, _, mintErr := x.clients.GitHubApp().CreateInstallationToken(ctx, installID)
	if mintErr != nil {
		return token, mintErr
	}

	if err := ws.Push(ctx, branch, fresh); err != nil {
		return fresh, err
	}
	return fresh, nil
}

// openChangeRequest opens the pull request for the pushed branch, retrying
// once on an expired credential. Host failures other than the taxonomy kinds
// surface as PublishFailed.
func (x *UseCase) openChangeRequest(ctx context.Context, installID types.GitHubAppInstallID, repo *model.Repository, branch types.BranchName, scan *model.ScanResult, outcome *model.FixOutcome) (*model.ChangeRequest, error) {
	prInput := &interfaces.CreatePullRequestInput{
		Owner: repo.Owner,
		Repo:  repo.Name,
		Title: model.ChangeRequestTitle(scan, outcome),
		Body:  model.ChangeRequestBody(scan, outcome),
		Head:  branch,
		Base:  repo.DefaultBranch,
	}

	changeReq, err := x.clients.GitHubApp().CreatePullRequest(ctx, installID, prInput)
	if errors.Is(err, types.ErrAuthorizationExpired) {
		logging.From(ctx).Warn("credential expired opening change request, retrying once")
		changeReq, err = x.clients.GitHubApp().CreatePullRequest(ctx, installID, prInput)
	}
	if err != nil {
		if errors.Is(err, types.ErrAuthorizationExpired) || errors.Is(err, types.ErrRateLimited) {
			return nil, err
		}
		return nil, goerr.Wrap(types.ErrPublishFailed, "failed to open change request",
			goerr.V("cause", err.Error()),
			goerr.V("branch", branch),
		)
	}

	return changeReq, nil
}

// discardAfter resets the workspace after a failure so the cache stays at its
// last good synchronized state. The original error always wins; a discard
// failure is only logged.
func (x *UseCase) discardAfter(ctx context.Context, ws *workspace.Workspace, err error) error {
	if discardErr := ws.Discard(); discardErr != nil {
		logging.From(ctx).Warn("failed to discard workspace after error",
			slog.Any("error", discardErr),
		)
	}
	return err
}

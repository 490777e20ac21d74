package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/logging"
)

// recordRun appends the finished run to the audit sink. Best effort: the sink
// is telemetry, not state, so failures are logged and never fail the run. The
// insert gets its own context so a run killed by timeout is still recorded.
func (x *UseCase) recordRun(ctx context.Context, runID types.RunID, input *model.RemediateInput, result *model.PipelineResult, runErr error, startedAt, finishedAt time.Time) {
	sink := x.clients.AuditSink()
	if sink == nil {
		return
	}

	record := &model.RunRecord{
		RunID:      runID,
		Tenant:     input.Tenant,
		RepoID:     input.RepoID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Timestamp:  startedAt.UnixMicro(),
	}

	if result != nil {
		record.Status = string(result.Status)
		if result.Repository != nil {
			record.RepoFullName = result.Repository.FullName
		}
		if result.Scan != nil {
			record.IssuesFound = len(result.Scan.Issues)
		}
		if result.Fix != nil {
			record.FixesApplied = len(result.Fix.Applied)
		}
		if result.ChangeRequest != nil {
			record.ChangeReqURL = result.ChangeRequest.URL
		}
	}
	if runErr != nil {
		record.Status = "failed"
		record.ErrorKind = errorKind(runErr)
	}

	insertCtx, cancel := context.WithTimeout(logging.With(context.Background(), logging.From(ctx)), 30*time.Second)
	defer cancel()

	if err := sink.Insert(insertCtx, record); err != nil {
		logging.From(ctx).Warn("failed to record pipeline run",
			slog.Any("run_id", runID),
			slog.Any("error", err),
		)
	}
}

// errorKind maps a run error to its taxonomy name for the audit record.
func errorKind(err error) string {
	for kind, sentinel := range map[string]error{
		"not_authorized":        types.ErrNotAuthorized,
		"ambiguous_ownership":   types.ErrAmbiguousOwnership,
		"authorization_expired": types.ErrAuthorizationExpired,
		"rate_limited":          types.ErrRateLimited,
		"engine_unavailable":    types.ErrEngineUnavailable,
		"workspace_conflict":    types.ErrWorkspaceConflict,
		"publish_failed":        types.ErrPublishFailed,
		"timeout":               types.ErrTimeout,
		"not_found":             types.ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return "internal"
}

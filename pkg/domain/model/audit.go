package model

import (
	"time"

	"github.com/hardenlab/securebot/pkg/domain/types"
)

// RunRecord is the audit row appended per finished pipeline run. The sink is
// write-only telemetry, not a source of truth; the pipeline never reads it
// back.
type RunRecord struct {
	RunID        types.RunID        `json:"run_id"`
	Tenant       string             `json:"tenant"`
	RepoID       types.GitHubRepoID `json:"repo_id"`
	RepoFullName string             `json:"repo_full_name"`
	Status       string             `json:"status"`
	ErrorKind    string             `json:"error_kind,omitempty"`
	IssuesFound  int                `json:"issues_found"`
	FixesApplied int                `json:"fixes_applied"`
	ChangeReqURL string             `json:"change_request_url,omitempty"`
	StartedAt    time.Time          `json:"started_at"`
	FinishedAt   time.Time          `json:"finished_at"`
	// Timestamp is StartedAt in unix microseconds for table partitioning.
	Timestamp int64 `json:"timestamp"`
}

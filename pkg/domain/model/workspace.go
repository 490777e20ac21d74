package model

import (
	"time"

	"github.com/hardenlab/securebot/pkg/domain/types"
)

// WorkspaceInfo describes one cached checkout for operational introspection.
type WorkspaceInfo struct {
	RepoID     types.GitHubRepoID `json:"repo_id"`
	LocalPath  string             `json:"local_path"`
	Revision   types.CommitSHA    `json:"revision"`
	LastSynced time.Time          `json:"last_synced"`
}

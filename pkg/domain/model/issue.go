package model

import (
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// Issue is one located problem reported by the remediation engine. Key is the
// machine-identifiable handle used for deduplication and for mapping to a fix.
type Issue struct {
	Key         string `json:"key"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Description string `json:"description"`
}

func (x *Issue) Validate() error {
	if x.Key == "" {
		return goerr.Wrap(types.ErrValidationFailed, "issue key is empty")
	}
	if x.File == "" {
		return goerr.Wrap(types.ErrValidationFailed, "issue file is empty")
	}
	return nil
}

// ScanResult is the outcome of scanning one workspace at one revision.
type ScanResult struct {
	RepoID    types.GitHubRepoID `json:"repo_id"`
	Revision  types.CommitSHA    `json:"revision"`
	Issues    []Issue            `json:"issues"`
	ScannedAt time.Time          `json:"scanned_at"`
}

// IssueKeys returns the deduplicated, sorted keys of all issues. Two scans of
// the same revision must produce the same value.
func (x *ScanResult) IssueKeys() []string {
	seen := make(map[string]struct{}, len(x.Issues))
	var keys []string
	for _, issue := range x.Issues {
		if _, ok := seen[issue.Key]; ok {
			continue
		}
		seen[issue.Key] = struct{}{}
		keys = append(keys, issue.Key)
	}
	sort.Strings(keys)
	return keys
}

package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// AppliedFix records one fix the engine applied to the working tree.
type AppliedFix struct {
	IssueKey    string `json:"issue_key"`
	Description string `json:"description"`
	Diff        string `json:"diff,omitempty"`
}

// SkippedFix records an issue the engine could not fix automatically.
type SkippedFix struct {
	IssueKey string `json:"issue_key"`
	Reason   string `json:"reason"`
}

// FixOutcome is the engine's report for one fix invocation.
type FixOutcome struct {
	Applied []AppliedFix `json:"applied_fixes"`
	Skipped []SkippedFix `json:"skipped_fixes"`
}

// Validate checks the engine contract: every applied fix must reference an
// issue key present in the scan that produced the input set. Fixes against
// unknown keys mean the engine worked on a stale workspace.
func (x *FixOutcome) Validate(issues []Issue) error {
	known := make(map[string]struct{}, len(issues))
	for _, issue := range issues {
		known[issue.Key] = struct{}{}
	}
	for _, fix := range x.Applied {
		if fix.IssueKey == "" {
			return goerr.Wrap(types.ErrValidationFailed, "applied fix has empty issue key")
		}
		if _, ok := known[fix.IssueKey]; !ok {
			return goerr.Wrap(types.ErrValidationFailed, "applied fix references unknown issue",
				goerr.V("issue_key", fix.IssueKey),
			)
		}
	}
	return nil
}

// SuccessRate renders "applied/total" against the scanned issue count, e.g.
// "2/3". The denominator is the scan, not the fix input, so a reviewer can
// audit coverage without re-running the pipeline.
func (x *FixOutcome) SuccessRate(issuesFound int) string {
	return fmt.Sprintf("%d/%d", len(x.Applied), issuesFound)
}

// AppliedKeys returns issue keys of applied fixes in application order.
func (x *FixOutcome) AppliedKeys() []string {
	keys := make([]string, 0, len(x.Applied))
	for _, fix := range x.Applied {
		keys = append(keys, fix.IssueKey)
	}
	return keys
}

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// PipelineStatus is the terminal state of one remediation run. Every status
// except StatusPublished short-circuits the remaining stages; all of them are
// successes, reported distinctly from failures.
type PipelineStatus string

const (
	StatusNoIssuesFound     PipelineStatus = "no_issues_found"
	StatusNoFixesApplicable PipelineStatus = "no_fixes_applicable"
	StatusNoChanges         PipelineStatus = "no_changes"
	StatusPublished         PipelineStatus = "published"
)

type RemediateInput struct {
	RepoID types.GitHubRepoID
	Tenant string
}

func (x *RemediateInput) Validate() error {
	if x.RepoID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "repository ID is empty")
	}
	if x.Tenant == "" {
		return goerr.Wrap(types.ErrValidationFailed, "tenant account is empty")
	}
	return nil
}

// PipelineResult is the transient aggregate of one orchestration call. It is
// returned to the caller and not persisted as state.
type PipelineResult struct {
	RunID         types.RunID    `json:"run_id"`
	Status        PipelineStatus `json:"status"`
	Repository    *Repository    `json:"repository"`
	Scan          *ScanResult    `json:"scan,omitempty"`
	Fix           *FixOutcome    `json:"fix,omitempty"`
	ChangeRequest *ChangeRequest `json:"change_request,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    time.Time      `json:"finished_at"`
}

// FixBranchName derives the run's branch name. The timestamp keeps branches
// of successive runs human-sortable, the run ID suffix keeps same-millisecond
// runs from colliding with a branch of a previous, possibly still-open run.
func FixBranchName(runID types.RunID, now time.Time) types.BranchName {
	return types.BranchName(fmt.Sprintf("securebot/fixes-%d-%s", now.UnixMilli(), runID.Short()))
}

// FixCommitMessage summarizes the run so a reviewer can audit the change
// request without re-running the pipeline.
func FixCommitMessage(scan *ScanResult, fix *FixOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SecureBot: fix %d security %s\n\n",
		len(fix.Applied), pluralize("vulnerability", "vulnerabilities", len(fix.Applied)))
	fmt.Fprintf(&b, "- Issues found: %d\n", len(scan.Issues))
	fmt.Fprintf(&b, "- Fixes applied: %d\n", len(fix.Applied))
	fmt.Fprintf(&b, "- Success rate: %s\n", fix.SuccessRate(len(scan.Issues)))
	fmt.Fprintf(&b, "- Issues addressed: %s\n", strings.Join(fix.AppliedKeys(), ", "))
	b.WriteString("\nAutomated security fixes by SecureBot")
	return b.String()
}

// ChangeRequestTitle builds the pull request title for the run.
func ChangeRequestTitle(scan *ScanResult, fix *FixOutcome) string {
	return fmt.Sprintf("SecureBot: fix %d of %d security %s",
		len(fix.Applied), len(scan.Issues),
		pluralize("issue", "issues", len(scan.Issues)))
}

// ChangeRequestBody enumerates exactly the applied fixes, plus the issues
// that were detected but left unfixed.
func ChangeRequestBody(scan *ScanResult, fix *FixOutcome) string {
	byKey := make(map[string]Issue, len(scan.Issues))
	for _, issue := range scan.Issues {
		byKey[issue.Key] = issue
	}

	var b strings.Builder
	b.WriteString("## Security fixes\n\n")
	fmt.Fprintf(&b, "SecureBot scanned this repository, found %d %s and fixed %d (%s).\n\n",
		len(scan.Issues), pluralize("issue", "issues", len(scan.Issues)),
		len(fix.Applied), fix.SuccessRate(len(scan.Issues)))

	b.WriteString("### Fixed\n\n")
	for _, applied := range fix.Applied {
		issue := byKey[applied.IssueKey]
		fmt.Fprintf(&b, "- **%s** (%s, %s) `%s`", applied.IssueKey, issue.Category, issue.Severity, issue.File)
		if applied.Description != "" {
			fmt.Fprintf(&b, ": %s", applied.Description)
		}
		b.WriteString("\n")
	}

	if len(fix.Skipped) > 0 {
		b.WriteString("\n### Not fixed automatically\n\n")
		for _, skipped := range fix.Skipped {
			fmt.Fprintf(&b, "- **%s**: %s\n", skipped.IssueKey, skipped.Reason)
		}
	}

	fmt.Fprintf(&b, "\n---\nScanned revision: `%s`\n", scan.Revision)
	return b.String()
}

func pluralize(single, plural string, n int) string {
	if n == 1 {
		return single
	}
	return plural
}

package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")
)

// Error taxonomy of the remediation pipeline. Every failure surfaced to a
// caller wraps exactly one of these so that the server boundary can map it to
// a response without inspecting host-specific payloads.
var (
	// ErrNotAuthorized means the tenant has no live installation. Not
	// retryable; the remedy (the install URL) is attached as an error value.
	ErrNotAuthorized = goerr.New("app is not installed for this account")

	// ErrNotFound means an installation or repository could not be resolved.
	ErrNotFound = goerr.New("not found")

	// ErrAmbiguousOwnership means the same repository ID was found under two
	// installations. This is a configuration inconsistency, never guessed
	// around.
	ErrAmbiguousOwnership = goerr.New("repository is owned by multiple installations")

	// ErrAuthorizationExpired means an installation credential was rejected.
	// The orchestrator re-mints and retries the failed host call exactly once.
	ErrAuthorizationExpired = goerr.New("installation credential expired or revoked")

	// ErrRateLimited carries a suggested backoff; the pipeline never retries
	// it by itself.
	ErrRateLimited = goerr.New("rate limited by repository host")

	// ErrEngineUnavailable means the remediation engine is missing or
	// misconfigured. Fatal for the run, not for the process.
	ErrEngineUnavailable = goerr.New("remediation engine is unavailable")

	// ErrWorkspaceConflict indicates a violation of the per-repository
	// locking discipline. It should never occur; observing it is a bug.
	ErrWorkspaceConflict = goerr.New("workspace is mutated by another run")

	// ErrPublishFailed means pushing the branch or opening the change request
	// failed after fixes were committed.
	ErrPublishFailed = goerr.New("failed to publish fixes")

	// ErrTimeout means the run exceeded its wall-clock budget.
	ErrTimeout = goerr.New("pipeline run exceeded time budget")
)

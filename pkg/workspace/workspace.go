package workspace

import (
	"context"
	"errors"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

const (
	commitAuthorName  = "SecureBot"
	commitAuthorEmail = "securebot[bot]@users.noreply.github.com"
)

// Workspace is an exclusive handle on one materialized checkout. Only the run
// holding it may mutate the tree; Release must be called on every exit path.
type Workspace struct {
	repo     *model.Repository
	path     string
	gitRepo  *git.Repository
	revision types.CommitSHA
	release  func()
	released bool
}

func (x *Workspace) Path() string {
	return x.path
}

// Revision is the default-branch tip the workspace was synchronized to.
func (x *Workspace) Revision() types.CommitSHA {
	return x.revision
}

func (x *Workspace) Repository() *model.Repository {
	return x.repo
}

// Release frees the per-repository lock. Idempotent.
func (x *Workspace) Release() {
	if x.released {
		return
	}
	x.released = true
	if x.release != nil {
		x.release()
	}
}

// CreateBranch creates and checks out the run's fix branch, keeping any
// uncommitted engine changes in the working tree.
func (x *Workspace) CreateBranch(branch types.BranchName) error {
	wt, err := x.gitRepo.Worktree()
	if err != nil {
		return goerr.Wrap(err, "failed to open worktree")
	}

	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(string(branch)),
		Create: true,
		Keep:   true,
	}); err != nil {
		return goerr.Wrap(err, "failed to create fix branch",
			goerr.V("branch", branch),
			goerr.V("repo", x.repo.FullName),
		)
	}

	return nil
}

// CommitAll stages and commits the whole working tree. A clean tree returns
// hasChanges=false without error; that is a normal terminal outcome.
func (x *Workspace) CommitAll(message string) (bool, error) {
	wt, err := x.gitRepo.Worktree()
	if err != nil {
		return false, goerr.Wrap(err, "failed to open worktree")
	}

	status, err := wt.Status()
	if err != nil {
		return false, goerr.Wrap(err, "failed to get worktree status")
	}
	if status.IsClean() {
		return false, nil
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, goerr.Wrap(err, "failed to stage changes")
	}

	if _, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  commitAuthorName,
			Email: commitAuthorEmail,
			When:  time.Now(),
		},
	}); err != nil {
		return false, goerr.Wrap(err, "failed to commit changes")
	}

	return true, nil
}

// Push publishes the branch to the remote with the run's credential. Revoked
// authorization fails loudly as AuthorizationExpired so the orchestrator can
// re-mint once.
func (x *Workspace) Push(ctx context.Context, branch types.BranchName, token types.InstallationToken) error {
	refSpec := config.RefSpec(branch.Ref() + ":" + branch.Ref())

	err := x.gitRepo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       basicAuth(token),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return mapGitError(err, "failed to push fix branch",
			goerr.V("branch", branch),
			goerr.V("repo", x.repo.FullName),
		)
	}

	return nil
}

// Discard returns the working tree to the last synchronized revision of the
// default branch, dropping staged and unstaged changes. Used on every
// non-published exit after the engine mutated the tree.
func (x *Workspace) Discard() error {
	wt, err := x.gitRepo.Worktree()
	if err != nil {
		return goerr.Wrap(err, "failed to open worktree")
	}

	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(string(x.repo.DefaultBranch)),
		Force:  true,
	}); err != nil {
		return goerr.Wrap(err, "failed to checkout default branch", goerr.V("repo", x.repo.FullName))
	}

	if err := wt.Reset(&git.ResetOptions{
		Commit: plumbing.NewHash(string(x.revision)),
		Mode:   git.HardReset,
	}); err != nil {
		return goerr.Wrap(err, "failed to reset workspace", goerr.V("repo", x.repo.FullName))
	}

	if err := wt.Clean(&git.CleanOptions{Dir: true}); err != nil {
		return goerr.Wrap(err, "failed to clean workspace", goerr.V("repo", x.repo.FullName))
	}

	return nil
}

// mapGitError converts go-git transport errors to the error taxonomy.
func mapGitError(err error, msg string, values ...goerr.Option) error {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed):
		return goerr.Wrap(types.ErrAuthorizationExpired, msg, values...)

	case errors.Is(err, transport.ErrRepositoryNotFound):
		return goerr.Wrap(types.ErrNotFound, msg, values...)
	}

	return goerr.Wrap(err, msg, values...)
}

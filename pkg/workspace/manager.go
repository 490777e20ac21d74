package workspace

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/logging"
	"github.com/hardenlab/securebot/pkg/utils/safe"
)

// Manager owns the on-disk checkout cache under root, keyed by repository ID.
// Mutation of a cached checkout is only permitted through a Workspace handle,
// and a handle is only handed out to the single run holding that repository's
// lock. The cache is not a source of truth and may be deleted at any time.
type Manager struct {
	root  string
	locks *keyedMutex

	mu      sync.Mutex
	entries map[types.GitHubRepoID]*entry
}

type entry struct {
	revision types.CommitSHA
	syncedAt time.Time
	held     bool
}

func New(root string) (*Manager, error) {
	if root == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "workspace root is empty")
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, goerr.Wrap(err, "failed to create workspace root", goerr.V("root", root))
	}

	return &Manager{
		root:    root,
		locks:   newKeyedMutex(),
		entries: make(map[types.GitHubRepoID]*entry),
	}, nil
}

func (x *Manager) dir(repoID types.GitHubRepoID) string {
	return filepath.Join(x.root, strconv.FormatInt(int64(repoID), 10))
}

// Acquire returns an exclusive, synchronized workspace for the repository.
// A second concurrent Acquire for the same repository ID blocks until the
// first holder releases (or ctx is done); different repository IDs proceed in
// parallel. The caller must Release the returned workspace on every exit path.
func (x *Manager) Acquire(ctx context.Context, repo *model.Repository, token types.InstallationToken) (*Workspace, error) {
	if err := repo.Validate(); err != nil {
		return nil, err
	}

	unlock, err := x.locks.Lock(ctx, repo.ID)
	if err != nil {
		return nil, err
	}

	ws, err := x.prepare(ctx, repo, token)
	if err != nil {
		unlock()
		return nil, err
	}

	x.mu.Lock()
	ent, ok := x.entries[repo.ID]
	if !ok {
		ent = &entry{}
		x.entries[repo.ID] = ent
	}
	if ent.held {
		// The keyed mutex should have made this impossible. Fail loudly
		// instead of mutating a tree another run believes it owns.
		x.mu.Unlock()
		unlock()
		return nil, goerr.Wrap(types.ErrWorkspaceConflict, "workspace entry already held",
			goerr.V("repo_id", repo.ID),
		)
	}
	ent.held = true
	ent.revision = ws.revision
	ent.syncedAt = time.Now()
	x.mu.Unlock()

	ws.release = func() {
		x.mu.Lock()
		ent.held = false
		x.mu.Unlock()
		unlock()
	}

	return ws, nil
}

// prepare materializes or synchronizes the checkout. Caller holds the lock.
func (x *Manager) prepare(ctx context.Context, repo *model.Repository, token types.InstallationToken) (*Workspace, error) {
	path := x.dir(repo.ID)
	branchRef := plumbing.NewBranchReferenceName(string(repo.DefaultBranch))

	var gitRepo *git.Repository
	if _, err := os.Stat(filepath.Join(path, ".git")); os.IsNotExist(err) {
		logging.From(ctx).Info("cloning repository",
			slog.String("repo", repo.FullName),
			slog.String("path", path),
		)

		gitRepo, err = git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
			URL:           repo.CloneURL,
			ReferenceName: branchRef,
			SingleBranch:  true,
			Auth:          basicAuth(token),
		})
		if err != nil {
			safe.RemoveAll(path)
			return nil, mapGitError(err, "failed to clone repository",
				goerr.V("repo", repo.FullName),
			)
		}
	} else {
		gitRepo, err = git.PlainOpen(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open cached workspace", goerr.V("path", path))
		}
		if err := x.sync(ctx, gitRepo, repo, token); err != nil {
			return nil, err
		}
	}

	head, err := gitRepo.Head()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve workspace HEAD", goerr.V("path", path))
	}

	return &Workspace{
		repo:     repo,
		path:     path,
		gitRepo:  gitRepo,
		revision: types.CommitSHA(head.Hash().String()),
	}, nil
}

// sync fast-forwards the cached checkout to the default branch tip and drops
// any leftovers of a previous run.
func (x *Manager) sync(ctx context.Context, gitRepo *git.Repository, repo *model.Repository, token types.InstallationToken) error {
	err := gitRepo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		Auth:       basicAuth(token),
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return mapGitError(err, "failed to fetch repository", goerr.V("repo", repo.FullName))
	}

	remoteRef, err := gitRepo.Reference(
		plumbing.NewRemoteReferenceName("origin", string(repo.DefaultBranch)), true)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve remote default branch",
			goerr.V("repo", repo.FullName),
			goerr.V("branch", repo.DefaultBranch),
		)
	}

	wt, err := gitRepo.Worktree()
	if err != nil {
		return goerr.Wrap(err, "failed to open worktree")
	}

	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(string(repo.DefaultBranch)),
		Force:  true,
	}); err != nil {
		return goerr.Wrap(err, "failed to checkout default branch",
			goerr.V("branch", repo.DefaultBranch),
		)
	}

	if err := wt.Reset(&git.ResetOptions{
		Commit: remoteRef.Hash(),
		Mode:   git.HardReset,
	}); err != nil {
		return goerr.Wrap(err, "failed to reset workspace", goerr.V("repo", repo.FullName))
	}

	if err := wt.Clean(&git.CleanOptions{Dir: true}); err != nil {
		return goerr.Wrap(err, "failed to clean workspace", goerr.V("repo", repo.FullName))
	}

	return nil
}

// List reports all cached checkouts for operational introspection.
func (x *Manager) List() []*model.WorkspaceInfo {
	x.mu.Lock()
	defer x.mu.Unlock()

	infos := make([]*model.WorkspaceInfo, 0, len(x.entries))
	for repoID, ent := range x.entries {
		infos = append(infos, &model.WorkspaceInfo{
			RepoID:     repoID,
			LocalPath:  x.dir(repoID),
			Revision:   ent.revision,
			LastSynced: ent.syncedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].RepoID < infos[j].RepoID })
	return infos
}

// Evict removes cached checkouts that have not been synchronized within
// maxAge. Held workspaces are skipped; eviction never waits for a lock.
func (x *Manager) Evict(maxAge time.Duration) int {
	x.mu.Lock()
	var stale []types.GitHubRepoID
	for repoID, ent := range x.entries {
		if !ent.held && time.Since(ent.syncedAt) > maxAge {
			stale = append(stale, repoID)
		}
	}
	x.mu.Unlock()

	evicted := 0
	for _, repoID := range stale {
		unlock, ok := x.locks.TryLock(repoID)
		if !ok {
			continue
		}
		x.mu.Lock()
		if ent, ok := x.entries[repoID]; ok && !ent.held && time.Since(ent.syncedAt) > maxAge {
			delete(x.entries, repoID)
			safe.RemoveAll(x.dir(repoID))
			evicted++
		}
		x.mu.Unlock()
		unlock()
	}

	return evicted
}

func basicAuth(token types.InstallationToken) *githttp.BasicAuth {
	if token == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: token.Raw(),
	}
}

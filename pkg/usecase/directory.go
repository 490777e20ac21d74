package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/interfaces"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/logging"
)

// directory is the installation directory: it resolves tenant accounts to
// installations and repository IDs to their owning installation. Instead of
// rescanning all installations per lookup, it keeps an index rebuilt on a
// bounded interval; removal of an installation drops its entries on the next
// rebuild, and Invalidate forces one.
type directory struct {
	app interfaces.GitHubApp
	ttl time.Duration

	mu        sync.RWMutex
	builtAt   time.Time
	byAccount map[string]*model.Installation
	byInstall map[types.GitHubAppInstallID][]*model.Repository
	byRepo    map[types.GitHubRepoID]*ownership
}

type ownership struct {
	repo         *model.Repository
	installation *model.Installation
}

func newDirectory(app interfaces.GitHubApp, ttl time.Duration) *directory {
	return &directory{
		app: app,
		ttl: ttl,
	}
}

// Invalidate drops the index so the next lookup rebuilds it.
func (x *directory) Invalidate() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.builtAt = time.Time{}
}

func (x *directory) fresh() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return !x.builtAt.IsZero() && time.Since(x.builtAt) < x.ttl
}

func (x *directory) refresh(ctx context.Context, force bool) error {
	if !force && x.fresh() {
		return nil
	}

	installs, err := x.app.ListInstallations(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list installations")
	}

	byAccount := make(map[string]*model.Installation, len(installs))
	byInstall := make(map[types.GitHubAppInstallID][]*model.Repository, len(installs))
	byRepo := make(map[types.GitHubRepoID]*ownership)

	for _, inst := range installs {
		byAccount[strings.ToLower(inst.Account)] = inst

		repos, err := x.app.ListInstallationRepos(ctx, inst.ID)
		if err != nil {
			// A single unreachable installation (e.g. suspended) must not
			// take down lookups for every other tenant.
			logging.From(ctx).Warn("failed to list repos for installation",
				slog.Any("installID", inst.ID),
				slog.Any("error", err),
			)
			continue
		}

		byInstall[inst.ID] = repos
		for _, repo := range repos {
			if prev, ok := byRepo[repo.ID]; ok && prev.installation.ID != inst.ID {
				// One repository under two installations is a configuration
				// inconsistency. Guessing an owner would grant one tenant's
				// credential to another tenant's repository.
				return goerr.Wrap(types.ErrAmbiguousOwnership, "repository appears under multiple installations",
					goerr.V("repo_id", repo.ID),
					goerr.V("install_id_a", prev.installation.ID),
					goerr.V("install_id_b", inst.ID),
				)
			}
			byRepo[repo.ID] = &ownership{repo: repo, installation: inst}
		}
	}

	x.mu.Lock()
	x.builtAt = time.Now()
	x.byAccount = byAccount
	x.byInstall = byInstall
	x.byRepo = byRepo
	x.mu.Unlock()

	logging.From(ctx).Debug("rebuilt installation directory",
		slog.Int("installations", len(byAccount)),
		slog.Int("repositories", len(byRepo)),
	)

	return nil
}

// ResolveInstallation returns the live installation for the tenant account,
// or ErrNotFound. Upstream unavailability is the only other error.
func (x *directory) ResolveInstallation(ctx context.Context, account string) (*model.Installation, error) {
	if err := x.refresh(ctx, false); err != nil {
		return nil, err
	}

	x.mu.RLock()
	inst, ok := x.byAccount[strings.ToLower(account)]
	x.mu.RUnlock()
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "no installation for account",
			goerr.V("account", account),
		)
	}
	return inst, nil
}

// ReposForInstallation returns the indexed repositories of one installation.
func (x *directory) ReposForInstallation(ctx context.Context, installID types.GitHubAppInstallID) ([]*model.Repository, error) {
	if err := x.refresh(ctx, false); err != nil {
		return nil, err
	}

	x.mu.RLock()
	repos := x.byInstall[installID]
	x.mu.RUnlock()
	return repos, nil
}

// FindRepository locates the repository and its owning installation. On an
// index miss it forces one rebuild before reporting ErrNotFound, so a freshly
// granted repository is found without waiting out the TTL.
func (x *directory) FindRepository(ctx context.Context, repoID types.GitHubRepoID) (*model.Repository, *model.Installation, error) {
	if err := x.refresh(ctx, false); err != nil {
		return nil, nil, err
	}

	if own := x.lookup(repoID); own != nil {
		return own.repo, own.installation, nil
	}

	if err := x.refresh(ctx, true); err != nil {
		return nil, nil, err
	}
	if own := x.lookup(repoID); own != nil {
		return own.repo, own.installation, nil
	}

	return nil, nil, goerr.Wrap(types.ErrNotFound, "repository is not accessible to any installation",
		goerr.V("repo_id", repoID),
	)
}

func (x *directory) lookup(repoID types.GitHubRepoID) *ownership {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.byRepo[repoID]
}

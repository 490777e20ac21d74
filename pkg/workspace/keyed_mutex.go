package workspace

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// keyedMutex serializes work per repository ID. Each key gets a one-slot
// semaphore so a waiter can give up when its context is cancelled, which a
// plain sync.Mutex cannot offer. Semaphores are never removed; the key space
// is bounded by the number of repositories this process has touched.
type keyedMutex struct {
	mu   sync.Mutex
	sems map[types.GitHubRepoID]chan struct{}
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		sems: make(map[types.GitHubRepoID]chan struct{}),
	}
}

func (x *keyedMutex) sem(key types.GitHubRepoID) chan struct{} {
	x.mu.Lock()
	defer x.mu.Unlock()

	sem, ok := x.sems[key]
	if !ok {
		sem = make(chan struct{}, 1)
		x.sems[key] = sem
	}
	return sem
}

// Lock blocks until the key is free or ctx is done. The returned release
// function is idempotent.
func (x *keyedMutex) Lock(ctx context.Context, key types.GitHubRepoID) (func(), error) {
	sem := x.sem(key)

	select {
	case sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-sem })
		}, nil

	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "gave up waiting for workspace lock",
			goerr.V("repo_id", key),
		)
	}
}

// TryLock acquires the key only if it is free right now.
func (x *keyedMutex) TryLock(key types.GitHubRepoID) (func(), bool) {
	sem := x.sem(key)

	select {
	case sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-sem })
		}, true
	default:
		return nil, false
	}
}

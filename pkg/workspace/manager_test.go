package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/workspace"
)

// testOrigin is a bare repository on the local filesystem plus a seed clone
// used to publish commits to it, standing in for the repository host.
type testOrigin struct {
	path     string
	seedPath string
	seed     *git.Repository
}

func newTestOrigin(t *testing.T) *testOrigin {
	t.Helper()

	originPath := t.TempDir()
	_ = gt.R1(git.PlainInit(originPath, true)).NoError(t)

	seedPath := t.TempDir()
	seed := gt.R1(git.PlainInit(seedPath, false)).NoError(t)

	_ = gt.R1(seed.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{originPath},
	})).NoError(t)

	origin := &testOrigin{
		path:     originPath,
		seedPath: seedPath,
		seed:     seed,
	}
	origin.commit(t, "README.md", "# demo\n", "initial commit")
	return origin
}

// commit writes a file in the seed clone, commits it and pushes master.
func (x *testOrigin) commit(t *testing.T, name, content, message string) plumbing.Hash {
	t.Helper()

	gt.NoError(t, os.WriteFile(filepath.Join(x.seedPath, name), []byte(content), 0600))

	wt := gt.R1(x.seed.Worktree()).NoError(t)
	_ = gt.R1(wt.Add(name)).NoError(t)
	hash := gt.R1(wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})).NoError(t)

	gt.NoError(t, x.seed.Push(&git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{"refs/heads/master:refs/heads/master"},
	}))

	return hash
}

func (x *testOrigin) repository(repoID types.GitHubRepoID) *model.Repository {
	return &model.Repository{
		ID:            repoID,
		Owner:         "hardenlab",
		Name:          "demo",
		FullName:      "hardenlab/demo",
		DefaultBranch: "master",
		CloneURL:      x.path,
	}
}

func TestManagerAcquire(t *testing.T) {
	ctx := context.Background()

	t.Run("first acquire clones the repository", func(t *testing.T) {
		origin := newTestOrigin(t)
		manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
		repo := origin.repository(101)

		ws := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
		defer ws.Release()

		data := gt.R1(os.ReadFile(filepath.Join(ws.Path(), "README.md"))).NoError(t)
		gt.S(t, string(data)).Contains("# demo")
		gt.V(t, ws.Revision() == "").Equal(false)
	})

	t.Run("reacquire synchronizes to the new tip", func(t *testing.T) {
		origin := newTestOrigin(t)
		manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
		repo := origin.repository(102)

		ws := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
		firstRev := ws.Revision()
		ws.Release()

		newTip := origin.commit(t, "app.js", "const x = 1\n", "add app")

		ws = gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
		defer ws.Release()

		gt.V(t, ws.Revision() == firstRev).Equal(false)
		gt.V(t, string(ws.Revision())).Equal(newTip.String())

		data := gt.R1(os.ReadFile(filepath.Join(ws.Path(), "app.js"))).NoError(t)
		gt.S(t, string(data)).Contains("const x = 1")
	})

	t.Run("reacquire drops leftovers of a previous run", func(t *testing.T) {
		origin := newTestOrigin(t)
		manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
		repo := origin.repository(103)

		ws := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
		stray := filepath.Join(ws.Path(), "stray.txt")
		gt.NoError(t, os.WriteFile(stray, []byte("leftover"), 0600))
		ws.Release()

		ws = gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
		defer ws.Release()

		_, err := os.Stat(stray)
		gt.V(t, os.IsNotExist(err)).Equal(true)
	})

	t.Run("second acquire for the same repo blocks until release", func(t *testing.T) {
		origin := newTestOrigin(t)
		manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
		repo := origin.repository(104)

		ws := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)

		acquired := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws2, err := manager.Acquire(ctx, repo, "")
			if err != nil {
				t.Error(err)
				return
			}
			close(acquired)
			ws2.Release()
		}()

		select {
		case <-acquired:
			t.Fatal("second acquire succeeded while workspace is held")
		case <-time.After(30 * time.Millisecond):
		}

		ws.Release()
		wg.Wait()
	})

	t.Run("waiting acquire honors context cancellation", func(t *testing.T) {
		origin := newTestOrigin(t)
		manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
		repo := origin.repository(105)

		ws := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
		defer ws.Release()

		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err := manager.Acquire(waitCtx, repo, "")
		gt.Error(t, err)
	})

	t.Run("invalid repository is rejected", func(t *testing.T) {
		manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
		_, err := manager.Acquire(ctx, &model.Repository{}, "")
		gt.Error(t, err)
	})
}

func TestManagerList(t *testing.T) {
	ctx := context.Background()
	origin := newTestOrigin(t)
	manager := gt.R1(workspace.New(t.TempDir())).NoError(t)

	gt.A(t, manager.List()).Length(0)

	ws := gt.R1(manager.Acquire(ctx, origin.repository(201), "")).NoError(t)
	ws.Release()

	infos := manager.List()
	gt.A(t, infos).Length(1)
	gt.V(t, infos[0].RepoID).Equal(types.GitHubRepoID(201))
	gt.V(t, infos[0].Revision).Equal(ws.Revision())
}

func TestManagerEvict(t *testing.T) {
	ctx := context.Background()
	origin := newTestOrigin(t)
	manager := gt.R1(workspace.New(t.TempDir())).NoError(t)

	ws := gt.R1(manager.Acquire(ctx, origin.repository(301), "")).NoError(t)
	path := ws.Path()

	t.Run("held workspace is never evicted", func(t *testing.T) {
		gt.V(t, manager.Evict(0)).Equal(0)
	})

	ws.Release()

	t.Run("stale workspace is removed", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		gt.V(t, manager.Evict(time.Millisecond)).Equal(1)

		_, err := os.Stat(path)
		gt.V(t, os.IsNotExist(err)).Equal(true)
		gt.A(t, manager.List()).Length(0)
	})

	t.Run("fresh workspace survives", func(t *testing.T) {
		ws := gt.R1(manager.Acquire(ctx, origin.repository(301), "")).NoError(t)
		ws.Release()
		gt.V(t, manager.Evict(time.Hour)).Equal(0)
		gt.A(t, manager.List()).Length(1)
	})
}

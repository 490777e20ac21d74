package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/workspace"
)

func TestWorkspacePublishFlow(t *testing.T) {
	ctx := context.Background()
	origin := newTestOrigin(t)
	manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
	repo := origin.repository(401)

	ws := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
	defer ws.Release()

	branch := types.BranchName("securebot/fixes-1-deadbeef")
	gt.NoError(t, ws.CreateBranch(branch))

	// The engine mutates the tree in place
	gt.NoError(t, os.WriteFile(filepath.Join(ws.Path(), "config.js"), []byte("const key = process.env.KEY\n"), 0600))

	hasChanges := gt.R1(ws.CommitAll("SecureBot: fix 1 security vulnerability")).NoError(t)
	gt.V(t, hasChanges).Equal(true)

	gt.NoError(t, ws.Push(ctx, branch, ""))

	t.Run("branch is visible on the remote", func(t *testing.T) {
		originRepo := gt.R1(git.PlainOpen(origin.path)).NoError(t)
		ref := gt.R1(originRepo.Reference(plumbing.ReferenceName(branch.Ref()), true)).NoError(t)
		gt.V(t, ref.Hash().IsZero()).Equal(false)
	})

	t.Run("discard returns the tree to the synchronized revision", func(t *testing.T) {
		gt.NoError(t, ws.Discard())

		_, err := os.Stat(filepath.Join(ws.Path(), "config.js"))
		gt.V(t, os.IsNotExist(err)).Equal(true)

		local := gt.R1(git.PlainOpen(ws.Path())).NoError(t)
		head := gt.R1(local.Head()).NoError(t)
		gt.V(t, head.Name().Short()).Equal("master")
		gt.V(t, head.Hash().String()).Equal(string(ws.Revision()))
	})
}

func TestWorkspaceCommitAll(t *testing.T) {
	ctx := context.Background()
	origin := newTestOrigin(t)
	manager := gt.R1(workspace.New(t.TempDir())).NoError(t)

	ws := gt.R1(manager.Acquire(ctx, origin.repository(402), "")).NoError(t)
	defer ws.Release()

	t.Run("clean tree commits nothing", func(t *testing.T) {
		hasChanges := gt.R1(ws.CommitAll("noop")).NoError(t)
		gt.V(t, hasChanges).Equal(false)
	})

	t.Run("modified tree commits everything", func(t *testing.T) {
		gt.NoError(t, os.WriteFile(filepath.Join(ws.Path(), "a.txt"), []byte("a"), 0600))
		gt.NoError(t, os.WriteFile(filepath.Join(ws.Path(), "b.txt"), []byte("b"), 0600))

		hasChanges := gt.R1(ws.CommitAll("two files")).NoError(t)
		gt.V(t, hasChanges).Equal(true)

		local := gt.R1(git.PlainOpen(ws.Path())).NoError(t)
		head := gt.R1(local.Head()).NoError(t)
		commit := gt.R1(local.CommitObject(head.Hash())).NoError(t)
		gt.V(t, commit.Message).Equal("two files")
		gt.S(t, commit.Author.Email).Contains("securebot[bot]")
	})
}

func TestWorkspaceRelease(t *testing.T) {
	ctx := context.Background()
	origin := newTestOrigin(t)
	manager := gt.R1(workspace.New(t.TempDir())).NoError(t)
	repo := origin.repository(403)

	ws := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
	ws.Release()
	ws.Release() // idempotent

	ws2 := gt.R1(manager.Acquire(ctx, repo, "")).NoError(t)
	ws2.Release()
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/model"
)

func TestCheckInstallation(t *testing.T) {
	ctx := context.Background()

	t.Run("installed account reports its repositories", func(t *testing.T) {
		env := newTestEnv(t)

		status := gt.R1(env.uc.CheckInstallation(ctx, "alice")).NoError(t)
		gt.V(t, status.Installed).Equal(true)
		gt.V(t, status.Installation.Account).Equal("alice")
		gt.A(t, status.Repositories).Length(1)
		gt.V(t, status.Repositories[0].Repository.FullName).Equal("alice/webapp")
	})

	t.Run("account lookup is case insensitive", func(t *testing.T) {
		env := newTestEnv(t)

		status := gt.R1(env.uc.CheckInstallation(ctx, "Alice")).NoError(t)
		gt.V(t, status.Installed).Equal(true)
	})

	t.Run("missing installation is an answer, not an error", func(t *testing.T) {
		env := newTestEnv(t)

		status := gt.R1(env.uc.CheckInstallation(ctx, "mallory")).NoError(t)
		gt.V(t, status.Installed).Equal(false)
		gt.V(t, status.InstallURL).Equal(installURL)
		gt.V(t, status.Installation == nil).Equal(true)
	})

	t.Run("empty account is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.CheckInstallation(ctx, "")
		gt.Error(t, err)
	})
}

func TestListRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("unscanned repository shows the placeholder status", func(t *testing.T) {
		env := newTestEnv(t)

		status := gt.R1(env.uc.ListRepositories(ctx, "alice")).NoError(t)
		gt.A(t, status.Repositories).Length(1)

		sec := status.Repositories[0].SecurityStatus
		gt.V(t, sec.Scanned).Equal(false)
		gt.V(t, sec.LastScan == nil).Equal(true)
		gt.V(t, sec.ProtectionEnabled).Equal(true)
	})

	t.Run("scan updates the listed security status", func(t *testing.T) {
		env := newTestEnv(t)
		env.rem.ScanFunc = func(ctx context.Context, dir string) ([]model.Issue, error) {
			return testIssues(), nil
		}

		_ = gt.R1(env.uc.Scan(ctx, env.repo.ID, "alice")).NoError(t)

		status := gt.R1(env.uc.ListRepositories(ctx, "alice")).NoError(t)
		sec := status.Repositories[0].SecurityStatus
		gt.V(t, sec.Scanned).Equal(true)
		gt.V(t, sec.LastScan == nil).Equal(false)
		gt.V(t, sec.IssuesFound).Equal(3)
	})
}

func TestDirectoryCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("lookups within the TTL reuse the index", func(t *testing.T) {
		env := newTestEnv(t)

		_ = gt.R1(env.uc.CheckInstallation(ctx, "alice")).NoError(t)
		_ = gt.R1(env.uc.CheckInstallation(ctx, "alice")).NoError(t)
		_ = gt.R1(env.uc.ListRepositories(ctx, "alice")).NoError(t)

		gt.A(t, env.app.ListInstallationsCalls()).Length(1)
	})

	t.Run("unknown repository forces one rebuild before giving up", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.Scan(ctx, 999999, "alice")
		gt.Error(t, err)

		// One initial build plus one forced rebuild on the miss
		gt.A(t, env.app.ListInstallationsCalls()).Length(2)
	})
}

func TestListWorkspaces(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	env.rem.ScanFunc = func(ctx context.Context, dir string) ([]model.Issue, error) {
		return nil, nil
	}

	gt.A(t, gt.R1(env.uc.ListWorkspaces(ctx)).NoError(t)).Length(0)

	_ = gt.R1(env.uc.Scan(ctx, env.repo.ID, "alice")).NoError(t)

	workspaces := gt.R1(env.uc.ListWorkspaces(ctx)).NoError(t)
	gt.A(t, workspaces).Length(1)
	gt.V(t, workspaces[0].RepoID).Equal(env.repo.ID)
}

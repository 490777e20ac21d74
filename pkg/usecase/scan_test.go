package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

func TestScan(t *testing.T) {
	ctx := context.Background()

	t.Run("reports issues at the synchronized revision", func(t *testing.T) {
		env := newTestEnv(t)
		env.rem.ScanFunc = func(ctx context.Context, dir string) ([]model.Issue, error) {
			return testIssues(), nil
		}

		result := gt.R1(env.uc.Scan(ctx, env.repo.ID, "alice")).NoError(t)
		gt.V(t, result.RepoID).Equal(env.repo.ID)
		gt.A(t, result.Issues).Length(3)
		gt.V(t, result.Revision == "").Equal(false)

		t.Run("scan does not hold the workspace afterwards", func(t *testing.T) {
			// A follow-up scan must not dead-lock on the repository lock
			_ = gt.R1(env.uc.Scan(ctx, env.repo.ID, "alice")).NoError(t)
		})
	})

	t.Run("unavailable engine fails before acquiring the workspace", func(t *testing.T) {
		env := newTestEnv(t)
		env.rem.ReadyFunc = func(ctx context.Context) error {
			return goerr.Wrap(types.ErrEngineUnavailable, "binary not found")
		}

		_, err := env.uc.Scan(ctx, env.repo.ID, "alice")
		gt.Error(t, err)
		gt.V(t, errors.Is(err, types.ErrEngineUnavailable)).Equal(true)
		gt.A(t, env.rem.ScanCalls()).Length(0)
	})

	t.Run("unknown tenant is not authorized", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.Scan(ctx, env.repo.ID, "mallory")
		gt.Error(t, err)
		gt.V(t, errors.Is(err, types.ErrNotAuthorized)).Equal(true)
	})
}

package workspace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

func TestKeyedMutex(t *testing.T) {
	t.Run("same key is mutually exclusive", func(t *testing.T) {
		km := newKeyedMutex()
		ctx := context.Background()

		release, err := km.Lock(ctx, types.GitHubRepoID(1))
		gt.NoError(t, err)

		_, ok := km.TryLock(types.GitHubRepoID(1))
		gt.V(t, ok).Equal(false)

		release()

		release2, ok := km.TryLock(types.GitHubRepoID(1))
		gt.V(t, ok).Equal(true)
		release2()
	})

	t.Run("different keys proceed in parallel", func(t *testing.T) {
		km := newKeyedMutex()
		ctx := context.Background()

		releaseA, err := km.Lock(ctx, types.GitHubRepoID(1))
		gt.NoError(t, err)
		releaseB, err := km.Lock(ctx, types.GitHubRepoID(2))
		gt.NoError(t, err)

		releaseA()
		releaseB()
	})

	t.Run("waiter gives up when context is cancelled", func(t *testing.T) {
		km := newKeyedMutex()

		release, err := km.Lock(context.Background(), types.GitHubRepoID(1))
		gt.NoError(t, err)
		defer release()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err = km.Lock(ctx, types.GitHubRepoID(1))
		gt.Error(t, err)
	})

	t.Run("release is idempotent", func(t *testing.T) {
		km := newKeyedMutex()

		release, err := km.Lock(context.Background(), types.GitHubRepoID(1))
		gt.NoError(t, err)
		release()
		release() // second call must not unlock someone else's hold

		release2, err := km.Lock(context.Background(), types.GitHubRepoID(1))
		gt.NoError(t, err)

		_, ok := km.TryLock(types.GitHubRepoID(1))
		gt.V(t, ok).Equal(false)
		release2()
	})

	t.Run("waiter acquires after holder releases", func(t *testing.T) {
		km := newKeyedMutex()

		release, err := km.Lock(context.Background(), types.GitHubRepoID(1))
		gt.NoError(t, err)

		var wg sync.WaitGroup
		acquired := make(chan struct{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := km.Lock(context.Background(), types.GitHubRepoID(1))
			if err != nil {
				t.Error(err)
				return
			}
			close(acquired)
			r()
		}()

		select {
		case <-acquired:
			t.Fatal("second lock acquired while first is held")
		case <-time.After(20 * time.Millisecond):
		}

		release()
		wg.Wait()

		select {
		case <-acquired:
		default:
			t.Fatal("second lock never acquired")
		}
	})
}

package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/hardenlab/securebot/pkg/utils/logging"
	"github.com/hardenlab/securebot/pkg/workspace"
)

// startEviction periodically drops cached checkouts that have not been
// synchronized within maxAge. Disabled when maxAge is zero.
func startEviction(ctx context.Context, manager *workspace.Manager, maxAge time.Duration) func() {
	if maxAge <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	ticker := time.NewTicker(maxAge / 4)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if n := manager.Evict(maxAge); n > 0 {
					logging.From(ctx).Info("evicted stale workspaces", slog.Int("count", n))
				}
			}
		}
	}()

	return func() { close(done) }
}

package usecase

import (
	"sync"
	"time"

	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// scanState remembers the latest scan per repository for the security_status
// placeholder in repository listings. In-memory only; listings simply show
// "not scanned" after a restart.
type scanState struct {
	mu     sync.RWMutex
	byRepo map[types.GitHubRepoID]scanSummary
}

type scanSummary struct {
	scannedAt   time.Time
	issuesFound int
}

func newScanState() *scanState {
	return &scanState{
		byRepo: make(map[types.GitHubRepoID]scanSummary),
	}
}

func (x *scanState) Record(repoID types.GitHubRepoID, scannedAt time.Time, issuesFound int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.byRepo[repoID] = scanSummary{scannedAt: scannedAt, issuesFound: issuesFound}
}

func (x *scanState) Status(repoID types.GitHubRepoID) model.SecurityStatus {
	x.mu.RLock()
	defer x.mu.RUnlock()

	status := model.SecurityStatus{
		// The app being installed is what grants protection.
		ProtectionEnabled: true,
	}
	if summary, ok := x.byRepo[repoID]; ok {
		scannedAt := summary.scannedAt
		status.Scanned = true
		status.LastScan = &scannedAt
		status.IssuesFound = summary.issuesFound
	}
	return status
}

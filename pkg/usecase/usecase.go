package usecase

import (
	"time"

	"github.com/hardenlab/securebot/pkg/domain/interfaces"
	"github.com/hardenlab/securebot/pkg/infra"
	"github.com/hardenlab/securebot/pkg/workspace"
)

const (
	// defaultTimeout is the wall-clock budget of one remediation run.
	// Scanning and fixing a full repository tree can take minutes.
	defaultTimeout = 10 * time.Minute

	// defaultDirectoryTTL bounds how stale the repo-to-installation index may
	// get before it is rebuilt from the host.
	defaultDirectoryTTL = 5 * time.Minute
)

type UseCase struct {
	clients    *infra.Clients
	workspaces *workspace.Manager
	directory  *directory
	scans      *scanState
	timeout    time.Duration
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

func WithWorkspaceManager(manager *workspace.Manager) Option {
	return func(x *UseCase) {
		x.workspaces = manager
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(x *UseCase) {
		x.timeout = timeout
	}
}

func WithDirectoryTTL(ttl time.Duration) Option {
	return func(x *UseCase) {
		x.directory.ttl = ttl
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:   clients,
		directory: newDirectory(clients.GitHubApp(), defaultDirectoryTTL),
		scans:     newScanState(),
		timeout:   defaultTimeout,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

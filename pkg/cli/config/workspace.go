package config

import (
	"log/slog"
	"time"

	"github.com/hardenlab/securebot/pkg/workspace"
	"github.com/urfave/cli/v3"
)

type Workspace struct {
	cacheDir string
	maxAge   time.Duration
}

func (x *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace-dir",
			Usage:       "Directory for cached repository checkouts",
			Category:    "Workspace",
			Destination: &x.cacheDir,
			Sources:     cli.EnvVars("SECUREBOT_WORKSPACE_DIR"),
			Value:       "/tmp/securebot/workspaces",
		},
		&cli.DurationFlag{
			Name:        "workspace-max-age",
			Usage:       "Evict cached checkouts not synchronized within this duration (0 disables eviction)",
			Category:    "Workspace",
			Destination: &x.maxAge,
			Sources:     cli.EnvVars("SECUREBOT_WORKSPACE_MAX_AGE"),
			Value:       24 * time.Hour,
		},
	}
}

func (x *Workspace) NewManager() (*workspace.Manager, error) {
	return workspace.New(x.cacheDir)
}

func (x *Workspace) MaxAge() time.Duration {
	return x.maxAge
}

func (x *Workspace) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("cacheDir", x.cacheDir),
		slog.Duration("maxAge", x.maxAge),
	)
}

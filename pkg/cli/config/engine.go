package config

import (
	"log/slog"

	"github.com/hardenlab/securebot/pkg/infra/engine"
	"github.com/urfave/cli/v3"
)

type Engine struct {
	path string
}

func (x *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "engine-path",
			Usage:       "Path to remediation engine binary",
			Category:    "Engine",
			Destination: &x.path,
			Sources:     cli.EnvVars("SECUREBOT_ENGINE_PATH"),
			Value:       "securebot-engine",
		},
	}
}

func (x *Engine) New() *engine.Command {
	return engine.New(x.path)
}

func (x *Engine) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
	)
}

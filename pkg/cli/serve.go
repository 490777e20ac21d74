package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/hardenlab/securebot/pkg/cli/config"
	"github.com/hardenlab/securebot/pkg/controller/server"
	"github.com/hardenlab/securebot/pkg/infra"
	"github.com/hardenlab/securebot/pkg/usecase"
	"github.com/hardenlab/securebot/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr       string
		runTimeout time.Duration

		githubApp config.GitHubApp
		engineCfg config.Engine
		wsConfig  config.Workspace
		bigQuery  config.BigQuery
		sentryCfg config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("SECUREBOT_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "run-timeout",
			Usage:       "Wall-clock budget for one remediation run",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("SECUREBOT_RUN_TIMEOUT"),
			Destination: &runTimeout,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			githubApp.Flags(),
			engineCfg.Flags(),
			wsConfig.Flags(),
			bigQuery.Flags(),
			sentryCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("RunTimeout", runTimeout),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Engine", engineCfg),
				slog.Any("Workspace", wsConfig),
				slog.Any("BigQuery", bigQuery),
				slog.Any("Sentry", sentryCfg),
			)

			if err := sentryCfg.Configure(ctx); err != nil {
				return err
			}

			ghApp, err := githubApp.New()
			if err != nil {
				return err
			}

			infraOptions := []infra.Option{
				infra.WithGitHubApp(ghApp),
				infra.WithRemediator(engineCfg.New()),
			}

			if bqClient, err := bigQuery.NewClient(ctx); err != nil {
				return err
			} else if bqClient != nil {
				infraOptions = append(infraOptions, infra.WithAuditSink(bqClient))
			}

			clients := infra.New(infraOptions...)

			manager, err := wsConfig.NewManager()
			if err != nil {
				return err
			}
			stopEviction := startEviction(ctx, manager, wsConfig.MaxAge())
			defer stopEviction()

			uc := usecase.New(clients,
				usecase.WithWorkspaceManager(manager),
				usecase.WithTimeout(runTimeout),
			)
			s := server.New(uc)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,

				// Remediation runs stream no intermediate output; the response
				// is written only when the pipeline finishes, so the write
				// timeout must cover the full run budget.
				WriteTimeout: runTimeout + 30*time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

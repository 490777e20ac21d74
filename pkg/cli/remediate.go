package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/hardenlab/securebot/pkg/cli/config"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/infra"
	"github.com/hardenlab/securebot/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// remediateCommand runs one remediation pipeline from the command line and
// prints the result as JSON. Useful for cron-driven remediation without the
// HTTP server.
func remediateCommand() *cli.Command {
	var (
		repoID     int64
		username   string
		runTimeout time.Duration

		githubApp config.GitHubApp
		engineCfg config.Engine
		wsConfig  config.Workspace
		bigQuery  config.BigQuery
		sentryCfg config.Sentry
	)

	return &cli.Command{
		Name:    "remediate",
		Aliases: []string{"r"},
		Usage:   "Run the remediation pipeline for one repository",
		Flags: slice.Flatten([]cli.Flag{
			&cli.Int64Flag{
				Name:        "repo-id",
				Usage:       "GitHub repository ID",
				Destination: &repoID,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "username",
				Usage:       "Account that requested the remediation",
				Destination: &username,
				Required:    true,
			},
			&cli.DurationFlag{
				Name:        "run-timeout",
				Usage:       "Wall-clock budget for the run",
				Value:       10 * time.Minute,
				Sources:     cli.EnvVars("SECUREBOT_RUN_TIMEOUT"),
				Destination: &runTimeout,
			},
		},
			githubApp.Flags(),
			engineCfg.Flags(),
			wsConfig.Flags(),
			bigQuery.Flags(),
			sentryCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
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

			manager, err := wsConfig.NewManager()
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New(infraOptions...),
				usecase.WithWorkspaceManager(manager),
				usecase.WithTimeout(runTimeout),
			)

			result, err := uc.RemediateAndPublish(ctx, &model.RemediateInput{
				RepoID: types.GitHubRepoID(repoID),
				Tenant: username,
			})
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				return goerr.Wrap(err, "failed to encode result")
			}

			return nil
		},
	}
}

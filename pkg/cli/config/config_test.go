package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/cli/config"
)

func TestSentryFlags(t *testing.T) {
	sentryConfig := &config.Sentry{}
	flags := sentryConfig.Flags()

	gt.V(t, len(flags)).Equal(2)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		flagNames[flag.Names()[0]] = true
	}

	gt.True(t, flagNames["sentry-dsn"])
	gt.True(t, flagNames["sentry-env"])
}

func TestSentryConfigure(t *testing.T) {
	t.Run("empty DSN is a no-op", func(t *testing.T) {
		sentryConfig := &config.Sentry{}
		gt.NoError(t, sentryConfig.Configure(context.Background()))
	})
}

func TestGitHubAppFlags(t *testing.T) {
	ghConfig := &config.GitHubApp{}
	flags := ghConfig.Flags()

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		flagNames[flag.Names()[0]] = true
	}

	gt.True(t, flagNames["github-app-id"])
	gt.True(t, flagNames["github-app-private-key"])
	gt.True(t, flagNames["github-app-name"])
	gt.True(t, flagNames["github-app-secret"])
}

func TestBigQuery(t *testing.T) {
	t.Run("unset project disables the sink", func(t *testing.T) {
		bqConfig := &config.BigQuery{}
		gt.V(t, bqConfig.Enabled()).Equal(false)

		client := gt.R1(bqConfig.NewClient(context.Background())).NoError(t)
		gt.V(t, client == nil).Equal(true)
	})

	t.Run("flags carry defaults for dataset and table", func(t *testing.T) {
		bqConfig := &config.BigQuery{}
		flagNames := make(map[string]bool)
		for _, flag := range bqConfig.Flags() {
			flagNames[flag.Names()[0]] = true
		}
		gt.True(t, flagNames["bigquery-project-id"])
		gt.True(t, flagNames["bigquery-dataset-id"])
		gt.True(t, flagNames["bigquery-table-id"])
	})
}

func TestWorkspaceConfig(t *testing.T) {
	wsConfig := &config.Workspace{}
	flagNames := make(map[string]bool)
	for _, flag := range wsConfig.Flags() {
		flagNames[flag.Names()[0]] = true
	}
	gt.True(t, flagNames["workspace-dir"])
	gt.True(t, flagNames["workspace-max-age"])
}

func TestEngineConfig(t *testing.T) {
	engineConfig := &config.Engine{}
	flags := engineConfig.Flags()
	gt.V(t, len(flags)).Equal(1)
	gt.V(t, flags[0].Names()[0]).Equal("engine-path")
}

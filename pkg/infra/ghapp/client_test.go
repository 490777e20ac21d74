package ghapp_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/infra/ghapp"
	"github.com/hardenlab/securebot/pkg/utils/testutil"
)

func TestNew(t *testing.T) {
	t.Run("valid options create a client", func(t *testing.T) {
		client := gt.R1(ghapp.New(12345, "dummy-pem")).NoError(t)
		gt.V(t, client == nil).Equal(false)
	})

	t.Run("missing app ID fails", func(t *testing.T) {
		_, err := ghapp.New(0, "dummy-pem")
		gt.Error(t, err)
	})

	t.Run("missing private key fails", func(t *testing.T) {
		_, err := ghapp.New(12345, "")
		gt.Error(t, err)
	})
}

func TestInstallURL(t *testing.T) {
	t.Run("default app name", func(t *testing.T) {
		client := gt.R1(ghapp.New(12345, "dummy-pem")).NoError(t)
		gt.V(t, client.InstallURL()).Equal("https://github.com/apps/securebot/installations/new")
	})

	t.Run("custom app name", func(t *testing.T) {
		client := gt.R1(ghapp.New(12345, "dummy-pem", ghapp.WithAppName("my-bot"))).NoError(t)
		gt.V(t, client.InstallURL()).Equal("https://github.com/apps/my-bot/installations/new")
	})
}

// TestListInstallations exercises the live GitHub API and only runs when app
// credentials are provided via the environment.
func TestListInstallations(t *testing.T) {
	strAppID := testutil.GetEnvOrSkip(t, "TEST_GITHUB_APP_ID")
	privateKey := testutil.GetEnvOrSkip(t, "TEST_GITHUB_APP_PRIVATE_KEY")

	appID := gt.R1(strconv.ParseInt(strAppID, 10, 64)).NoError(t)
	client := gt.R1(ghapp.New(types.GitHubAppID(appID), types.GitHubAppPrivateKey(privateKey))).NoError(t)

	installs := gt.R1(client.ListInstallations(context.Background())).NoError(t)
	for _, inst := range installs {
		gt.NoError(t, inst.Validate())
	}
}

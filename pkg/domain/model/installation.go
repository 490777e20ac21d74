package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// Installation is the authorization binding between a tenant account and the
// app's access grant on GitHub. It is re-resolved on every pipeline run to
// pick up tenant-side authorization changes.
type Installation struct {
	ID          types.GitHubAppInstallID
	Account     string
	AccountType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (x *Installation) Validate() error {
	if x.ID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "installation ID is empty")
	}
	if x.Account == "" {
		return goerr.Wrap(types.ErrValidationFailed, "installation account is empty")
	}
	return nil
}

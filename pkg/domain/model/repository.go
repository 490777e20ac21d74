package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// Repository represents a GitHub repository accessible to an installation
type Repository struct {
	ID             types.GitHubRepoID
	Owner          string
	Name           string
	FullName       string
	DefaultBranch  types.BranchName
	CloneURL       string
	HTMLURL        string
	Private        bool
	InstallationID types.GitHubAppInstallID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (x *Repository) Validate() error {
	if x.ID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "repository ID is empty")
	}
	if x.Owner == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository owner is empty")
	}
	if x.Name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository name is empty")
	}
	if x.DefaultBranch == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository default branch is empty")
	}
	return nil
}

// SecurityStatus is a display placeholder attached to repository listings for
// the presentation layer. It reflects only what this process has observed
// since startup and is not a source of truth.
type SecurityStatus struct {
	Scanned           bool       `json:"scanned"`
	LastScan          *time.Time `json:"last_scan"`
	IssuesFound       int        `json:"issues_found"`
	ProtectionEnabled bool       `json:"protection_enabled"`
}

// RepositoryListing pairs a repository with its security status for the
// inbound listRepositories operation.
type RepositoryListing struct {
	Repository     *Repository    `json:"repository"`
	SecurityStatus SecurityStatus `json:"security_status"`
}

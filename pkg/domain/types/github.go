package types

import "log/slog"

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppSecret     string
	GitHubAppPrivateKey string
	InstallationToken   string
	GitHubRepoID        int64
	BranchName          string
	CommitSHA           string
)

func (x GitHubAppSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppSecret) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

// InstallationToken is the short-lived credential minted per pipeline run.
// It must never appear in logs, even at debug level.
func (x InstallationToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x InstallationToken) String() string {
	return "***********"
}

// Raw returns the token value for authenticating against the repository host.
func (x InstallationToken) Raw() string {
	return string(x)
}

func (x BranchName) Ref() string {
	return "refs/heads/" + string(x)
}

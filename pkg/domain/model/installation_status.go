package model

// InstallationStatus answers the inbound checkInstallation operation. When
// the app is not installed, InstallURL points the tenant at the remedy.
type InstallationStatus struct {
	Installed    bool                 `json:"installed"`
	InstallURL   string               `json:"install_url,omitempty"`
	Installation *Installation        `json:"installation,omitempty"`
	Repositories []*RepositoryListing `json:"repositories,omitempty"`
}

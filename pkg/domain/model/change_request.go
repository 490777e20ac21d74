package model

import "github.com/hardenlab/securebot/pkg/domain/types"

// ChangeRequest is the published artifact of a successful run: a host-native
// pull request. Created at most once per run and never mutated afterward.
type ChangeRequest struct {
	Number int              `json:"number"`
	Title  string           `json:"title"`
	Body   string           `json:"body"`
	State  string           `json:"state"`
	URL    string           `json:"url"`
	Branch types.BranchName `json:"branch"`
}

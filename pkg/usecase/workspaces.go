package usecase

import (
	"context"

	"github.com/hardenlab/securebot/pkg/domain/model"
)

// ListWorkspaces reports the cached checkouts for operational introspection.
func (x *UseCase) ListWorkspaces(ctx context.Context) ([]*model.WorkspaceInfo, error) {
	if x.workspaces == nil {
		return nil, nil
	}
	return x.workspaces.List(), nil
}

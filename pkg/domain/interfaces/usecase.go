package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

// UseCase is the inbound surface consumed by the HTTP controller.
type UseCase interface {
	CheckInstallation(ctx context.Context, tenant string) (*model.InstallationStatus, error)
	ListRepositories(ctx context.Context, tenant string) (*model.InstallationStatus, error)
	Scan(ctx context.Context, repoID types.GitHubRepoID, tenant string) (*model.ScanResult, error)
	RemediateAndPublish(ctx context.Context, input *model.RemediateInput) (*model.PipelineResult, error)
	ListWorkspaces(ctx context.Context) ([]*model.WorkspaceInfo, error)
}

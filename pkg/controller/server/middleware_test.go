package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/controller/server"
	"github.com/hardenlab/securebot/pkg/domain/mock"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/utils/logging"
)

func TestMiddleware(t *testing.T) {
	t.Run("request context carries a per-request logger", func(t *testing.T) {
		var capturedCtx context.Context
		uc := &mock.UseCaseMock{
			ListWorkspacesFunc: func(ctx context.Context) ([]*model.WorkspaceInfo, error) {
				capturedCtx = ctx
				return nil, nil
			},
		}
		srv := server.New(uc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/workspaces", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)

		logger := logging.From(capturedCtx)
		defaultLogger := logging.From(context.Background())
		gt.V(t, logger == defaultLogger).Equal(false)
	})

	t.Run("unknown route is a plain 404", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})
}

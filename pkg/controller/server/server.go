package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/interfaces"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

type Server struct {
	mux *chi.Mux
}

func New(uc interfaces.UseCase) *Server {
	r := chi.NewRouter()
	r.Use(preProcess)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/installation", handleCheckInstallation(uc))
		r.Get("/repos/{username}", handleListRepositories(uc))
		r.Post("/scan", handleScan(uc))
		r.Post("/remediate", handleRemediate(uc))
		r.Get("/workspaces", handleListWorkspaces(uc))
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

func handleCheckInstallation(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		if username == "" {
			respondError(w, r, goerr.Wrap(types.ErrValidationFailed, "username is required"))
			return
		}

		status, err := uc.CheckInstallation(r.Context(), username)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, installationResponse(username, status))
	}
}

func handleListRepositories(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			respondError(w, r, goerr.Wrap(types.ErrValidationFailed, "username is required"))
			return
		}

		status, err := uc.ListRepositories(r.Context(), username)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, installationResponse(username, status))
	}
}

type repoRequest struct {
	RepoID   int64  `json:"repo_id"`
	Username string `json:"username"`
}

func parseRepoRequest(r *http.Request) (*repoRequest, error) {
	var req repoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "invalid request body")
	}
	if req.RepoID == 0 || req.Username == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "repo_id and username are required")
	}
	return &req, nil
}

func handleScan(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseRepoRequest(r)
		if err != nil {
			respondError(w, r, err)
			return
		}

		result, err := uc.Scan(r.Context(), types.GitHubRepoID(req.RepoID), req.Username)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, map[string]any{
			"success":      true,
			"scan_results": result,
		})
	}
}

func handleRemediate(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseRepoRequest(r)
		if err != nil {
			respondError(w, r, err)
			return
		}

		// Long-running: the full pipeline can take minutes and the response
		// is written only when it finishes.
		result, err := uc.RemediateAndPublish(r.Context(), &model.RemediateInput{
			RepoID: types.GitHubRepoID(req.RepoID),
			Tenant: req.Username,
		})
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, map[string]any{
			"success": true,
			"result":  result,
		})
	}
}

func handleListWorkspaces(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaces, err := uc.ListWorkspaces(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		if workspaces == nil {
			workspaces = []*model.WorkspaceInfo{}
		}

		respondJSON(w, r, http.StatusOK, map[string]any{
			"success":    true,
			"count":      len(workspaces),
			"workspaces": workspaces,
		})
	}
}

func installationResponse(username string, status *model.InstallationStatus) map[string]any {
	resp := map[string]any{
		"success":   true,
		"username":  username,
		"installed": status.Installed,
	}
	if !status.Installed {
		resp["install_url"] = status.InstallURL
		return resp
	}

	resp["installation"] = status.Installation
	resp["repositories"] = status.Repositories
	resp["repository_count"] = len(status.Repositories)
	return resp
}

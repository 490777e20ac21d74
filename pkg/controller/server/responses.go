package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/errutil"
	"github.com/hardenlab/securebot/pkg/utils/logging"
)

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleError(r.Context(), "fail to marshal response", err)
		safeWrite(w, http.StatusInternalServerError, []byte(`{"success":false,"error":"internal"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, data)
}

type errorEnvelope struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	InstallURL string `json:"install_url,omitempty"`
	RetryAfter int    `json:"retry_after_seconds,omitempty"`
}

// respondError maps a use-case error onto its HTTP status and JSON envelope.
// Taxonomy errors are client-visible as-is; anything unmapped is reported to
// Sentry and reduced to a bare 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	env := errorEnvelope{
		Success: false,
		Message: err.Error(),
	}

	var code int
	switch {
	case errors.Is(err, types.ErrValidationFailed), errors.Is(err, types.ErrInvalidOption):
		code = http.StatusBadRequest
		env.Error = "validation_failed"

	case errors.Is(err, types.ErrNotAuthorized):
		code = http.StatusForbidden
		env.Error = "not_authorized"
		env.InstallURL = stringValue(err, "install_url")

	case errors.Is(err, types.ErrNotFound):
		code = http.StatusNotFound
		env.Error = "not_found"

	case errors.Is(err, types.ErrAmbiguousOwnership):
		code = http.StatusConflict
		env.Error = "ambiguous_ownership"

	case errors.Is(err, types.ErrWorkspaceConflict):
		code = http.StatusConflict
		env.Error = "workspace_conflict"

	case errors.Is(err, types.ErrRateLimited):
		code = http.StatusTooManyRequests
		env.Error = "rate_limited"
		env.RetryAfter = intValue(err, "retry_after_seconds")

	case errors.Is(err, types.ErrAuthorizationExpired):
		code = http.StatusForbidden
		env.Error = "authorization_expired"

	case errors.Is(err, types.ErrEngineUnavailable):
		code = http.StatusServiceUnavailable
		env.Error = "engine_unavailable"

	case errors.Is(err, types.ErrPublishFailed):
		code = http.StatusBadGateway
		env.Error = "publish_failed"

	case errors.Is(err, types.ErrTimeout):
		code = http.StatusGatewayTimeout
		env.Error = "timeout"

	default:
		errutil.HandleError(r.Context(), "unexpected error handling request", err)
		code = http.StatusInternalServerError
		env.Error = "internal"
		env.Message = "internal server error"
	}

	data, marshalErr := json.Marshal(env)
	if marshalErr != nil {
		safeWrite(w, http.StatusInternalServerError, []byte(`{"success":false,"error":"internal"}`))
		return
	}

	if env.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(env.RetryAfter))
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, data)
}

func stringValue(err error, key string) string {
	if goErr := goerr.Unwrap(err); goErr != nil {
		if v, ok := goErr.Values()[key].(string); ok {
			return v
		}
	}
	return ""
}

func intValue(err error, key string) int {
	if goErr := goerr.Unwrap(err); goErr != nil {
		if v, ok := goErr.Values()[key].(int); ok {
			return v
		}
	}
	return 0
}

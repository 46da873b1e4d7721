package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/codemetry/codemetry/internal/auth"
	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/errors"
)

// ErrorResponse is the uniform error body of every endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusResponse is the status/message pair returned by webhook events
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response. Headers must be written before the
// body, so encoding errors can only be logged.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.WithError(err).Error("failed to encode response")
	}
}

// writeError maps a domain error to its HTTP status and sends the
// uniform error body. Unrecognized errors are reported as a bare 500 so
// internals never leak to clients.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, kind := classifyError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
		h.log.WithError(err).Error("request failed")
	}
	h.writeJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// classifyError translates the error taxonomy into status codes
func classifyError(err error) (int, string) {
	var reqErr *errors.RequestFailedError

	switch {
	case stderrors.Is(err, errors.ErrProjectNotFound),
		stderrors.Is(err, errors.ErrUserNotFound),
		stderrors.Is(err, db.ErrRecordNotFound):
		return http.StatusNotFound, "not_found"
	case stderrors.Is(err, errors.ErrDuplicateWebhook),
		stderrors.Is(err, errors.ErrWebhookNotConnected):
		return http.StatusForbidden, "forbidden"
	case stderrors.Is(err, errors.ErrUnknownWebhookEvent):
		return http.StatusBadRequest, "bad_request"
	case stderrors.Is(err, errors.ErrSyncInProgress),
		stderrors.Is(err, errors.ErrRootDirectoryExists),
		stderrors.Is(err, errors.ErrRootDirectoryMissing),
		stderrors.Is(err, db.ErrDuplicateName):
		return http.StatusConflict, "conflict"
	case stderrors.Is(err, errors.ErrProviderUnavailable),
		stderrors.As(err, &reqErr):
		return http.StatusBadGateway, "provider_error"
	case stderrors.Is(err, errors.ErrUnsupportedEncoding):
		return http.StatusUnprocessableEntity, "unsupported_encoding"
	case stderrors.Is(err, auth.ErrInvalidToken),
		stderrors.Is(err, auth.ErrTokenExpired),
		stderrors.Is(err, auth.ErrPasswordMismatch):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeBody parses a JSON request body into dst. Unknown fields are
// ignored; provider webhook payloads carry far more than we read.
func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

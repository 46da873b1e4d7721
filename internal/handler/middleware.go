package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/codemetry/codemetry/internal/auth"
	"github.com/codemetry/codemetry/internal/db"
)

// userIDKey is the context key carrying the authenticated user's ID
type contextKey string

const userIDKey contextKey = "user_id"

// RequireAuth validates the bearer token and stores the user ID in the
// request context. The user row must still exist; tokens outlive
// account deletion otherwise.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.writeError(w, auth.ErrInvalidToken)
			return
		}

		userID, err := h.tokens.Validate(token)
		if err != nil {
			h.writeError(w, err)
			return
		}

		if _, err := h.store.GetUserByID(r.Context(), userID); err != nil {
			if stderrors.Is(err, db.ErrRecordNotFound) {
				h.writeError(w, auth.ErrInvalidToken)
				return
			}
			h.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authedUserID extracts the authenticated user ID set by RequireAuth
func authedUserID(ctx context.Context) uint {
	id, _ := ctx.Value(userIDKey).(uint)
	return id
}

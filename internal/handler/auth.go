package handler

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/codemetry/codemetry/internal/auth"
	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/errors"
	"github.com/codemetry/codemetry/internal/logging"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Register creates a new account
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "username, email and password are required"})
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	user := &db.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		h.writeError(w, err)
		return
	}

	h.log.WithField(logging.FieldUserID, user.ID).Info("user registered")
	h.writeJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and issues an API token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if stderrors.Is(err, db.ErrRecordNotFound) {
			// Indistinguishable from a wrong password
			h.writeError(w, auth.ErrPasswordMismatch)
			return
		}
		h.writeError(w, err)
		return
	}

	if err := h.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		h.writeError(w, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.writeError(w, errors.WrapWithContext(err, "issue token"))
		return
	}

	if err := h.store.CreateToken(r.Context(), &db.Token{
		UserID:    user.ID,
		Name:      "login",
		Value:     token,
		ExpiresAt: expiresAt,
	}); err != nil {
		h.writeError(w, err)
		return
	}

	h.log.WithField(logging.FieldUserID, user.ID).Info("user logged in")
	h.writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

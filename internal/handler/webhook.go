package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/errors"
	"github.com/codemetry/codemetry/internal/gh"
	"github.com/codemetry/codemetry/internal/logging"
)

// eventHeader carries the provider's event kind
const eventHeader = "X-GitHub-Event"

// Provider event kinds handled by the webhook endpoint
const (
	eventPing = "ping"
	eventPush = "push"
)

// webhookPayload covers both ping and push deliveries. HookID is only
// present on ping; After only on push.
type webhookPayload struct {
	HookID     int64         `json:"hook_id"`
	After      string        `json:"after"`
	Repository gh.Repository `json:"repository"`
}

// webhookInfo describes a project's webhook connection state
type webhookInfo struct {
	Connected    bool   `json:"connected"`
	HookID       *int64 `json:"hook_id,omitempty"`
	LastSyncedAt string `json:"last_synced_at,omitempty"`
}

// DescribeWebhook reports a project's webhook connection state
func (h *Handler) DescribeWebhook(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	info := webhookInfo{Connected: project.HookID != nil, HookID: project.HookID}
	if project.LastSyncedAt != nil {
		info.LastSyncedAt = project.LastSyncedAt.UTC().Format(time.RFC3339)
	}
	h.writeJSON(w, http.StatusOK, info)
}

// WebhookEvent receives provider deliveries. The endpoint is not behind
// token auth; the provider cannot send our bearer tokens. Access control
// is the event contract itself: ping only connects an unconnected
// project, push only updates a connected one.
func (h *Handler) WebhookEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		h.writeError(w, errors.ErrProjectNotFound)
		return
	}

	project, err := h.store.GetProject(r.Context(), uint(id))
	if err != nil {
		if stderrors.Is(err, db.ErrRecordNotFound) {
			h.writeError(w, errors.ErrProjectNotFound)
			return
		}
		h.writeError(w, err)
		return
	}

	var payload webhookPayload
	if err := decodeBody(r, &payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid event payload"})
		return
	}

	event := r.Header.Get(eventHeader)
	log := h.log.WithField(logging.FieldProjectID, project.ID).WithField(logging.FieldEvent, event)

	switch event {
	case eventPing:
		h.handlePing(w, r, project, &payload, log)
	case eventPush:
		h.handlePush(w, r, project, &payload, log)
	default:
		h.writeError(w, errors.ErrUnknownWebhookEvent)
	}
}

// handlePing connects the webhook and performs the initial tree import
func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request, project *db.Project, payload *webhookPayload, log *logrus.Entry) {
	if project.HookID != nil {
		h.writeError(w, errors.ErrDuplicateWebhook)
		return
	}
	if payload.HookID == 0 {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "ping event without hook_id"})
		return
	}

	// The hook is recorded before the import so a concurrent ping is
	// rejected as a duplicate rather than racing the import
	project.HookID = &payload.HookID
	if err := h.store.UpdateProject(r.Context(), project); err != nil {
		h.writeError(w, err)
		return
	}

	commit, err := h.client.GetDefaultBranchCommit(r.Context(), &payload.Repository)
	if err != nil {
		h.disconnectHook(r.Context(), project, log)
		h.writeError(w, err)
		return
	}

	if err := h.engine.ImportTree(r.Context(), commit.Tree.URL, project.ID); err != nil {
		h.disconnectHook(r.Context(), project, log)
		h.writeError(w, err)
		return
	}

	log.WithField(logging.FieldSHA, commit.SHA).Info("webhook connected, tree imported")
	h.writeJSON(w, http.StatusCreated, StatusResponse{Status: "connected", Message: "webhook connected and repository imported"})
}

// disconnectHook rolls the hook record back after a failed import so a
// redelivered ping can retry instead of hitting the duplicate gate
func (h *Handler) disconnectHook(ctx context.Context, project *db.Project, log *logrus.Entry) {
	project.HookID = nil
	if err := h.store.UpdateProject(ctx, project); err != nil {
		log.WithError(err).Error("Failed to disconnect hook after import failure")
	}
}

// handlePush synchronizes against the post-push commit
func (h *Handler) handlePush(w http.ResponseWriter, r *http.Request, project *db.Project, payload *webhookPayload, log *logrus.Entry) {
	if project.HookID == nil {
		h.writeError(w, errors.ErrWebhookNotConnected)
		return
	}
	if payload.After == "" {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "push event without after SHA"})
		return
	}

	commit, err := h.client.GetCommit(r.Context(), payload.Repository.GitCommitsURL, payload.After)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.engine.UpdateTree(r.Context(), commit.Tree.URL, project.ID); err != nil {
		h.writeError(w, err)
		return
	}

	log.WithField(logging.FieldSHA, payload.After).Info("push synchronized")
	h.writeJSON(w, http.StatusOK, StatusResponse{Status: "synchronized", Message: "repository tree updated"})
}

// ResetWebhook disconnects the webhook and drops the mirrored tree
func (h *Handler) ResetWebhook(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.engine.ResetWebhook(r.Context(), project.ID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, StatusResponse{Status: "reset", Message: "webhook disconnected and mirror removed"})
}

// Package handler provides the gateway's HTTP surface.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rahalah/travel-gateway/internal/chat"
	"github.com/rahalah/travel-gateway/internal/middleware"
	"github.com/rahalah/travel-gateway/internal/model"
	"github.com/rahalah/travel-gateway/internal/session"
	"github.com/rahalah/travel-gateway/pkg/logger"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	registry    *session.Registry
	broadcaster *chat.Broadcaster
	logger      *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(reg *session.Registry, bc *chat.Broadcaster, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		registry:    reg,
		broadcaster: bc,
		logger:      log,
	}
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.registry.Create()
	writeJSON(w, http.StatusCreated, stateResponse(sess.Snapshot()))
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := lookupSession(w, r, h.registry)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(sess.Snapshot()))
}

// Delete handles DELETE /api/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := lookupSession(w, r, h.registry)
	if !ok {
		return
	}
	h.registry.Delete(sess.ID())
	w.WriteHeader(http.StatusNoContent)
}

// SwitchMode handles PUT /api/sessions/{id}/mode. Switching to a new mode
// resets the conversation; switching to the current one changes nothing.
func (h *SessionHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	sess, ok := lookupSession(w, r, h.registry)
	if !ok {
		return
	}

	var req model.SwitchModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if sess.SwitchMode(mode) {
		h.logger.Info("mode switched",
			zap.String("session_id", sess.ID()),
			zap.String("mode", string(mode)),
		)
		snap := sess.Snapshot()
		h.broadcaster.Publish(snap)
	}

	writeJSON(w, http.StatusOK, stateResponse(sess.Snapshot()))
}

// lookupSession resolves the {id} URL parameter, writing the error response
// itself when the identifier is invalid or unknown.
func lookupSession(w http.ResponseWriter, r *http.Request, reg *session.Registry) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	sess, err := reg.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to load session")
		}
		return nil, false
	}
	return sess, true
}

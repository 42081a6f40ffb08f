package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rahalah/travel-gateway/internal/chat"
	"github.com/rahalah/travel-gateway/internal/middleware"
	"github.com/rahalah/travel-gateway/internal/model"
	"github.com/rahalah/travel-gateway/internal/session"
	"github.com/rahalah/travel-gateway/pkg/logger"
)

// ChatHandler handles conversational turn endpoints.
type ChatHandler struct {
	orchestrator *chat.Orchestrator
	registry     *session.Registry
	logger       *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(orch *chat.Orchestrator, reg *session.Registry, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orch,
		registry:     reg,
		logger:       log,
	}
}

// Send handles POST /api/sessions/{id}/chat. It runs one turn to completion
// (including the blocking backend call) and returns the post-turn state. A
// backend failure still yields 200: the failed turn is visible in the
// history as an assistant-style error message.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, ok := lookupSession(w, r, h.registry)
	if !ok {
		return
	}

	var req model.ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateQuery(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.orchestrator.HandleUserInput(r.Context(), sess, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(snap))
}

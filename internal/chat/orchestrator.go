// Package chat drives conversational turns against the trip-planning
// backend.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rahalah/travel-gateway/internal/backend"
	"github.com/rahalah/travel-gateway/internal/middleware"
	"github.com/rahalah/travel-gateway/internal/model"
	"github.com/rahalah/travel-gateway/internal/session"
	"github.com/rahalah/travel-gateway/pkg/logger"
	"github.com/rahalah/travel-gateway/pkg/metrics"
)

// ErrEmptyMessage is returned when a turn is attempted with no input.
var ErrEmptyMessage = errors.New("message cannot be empty")

// Notifier receives the post-turn snapshot, signalling the presentation
// layer that session state changed and a redraw is due.
type Notifier func(model.Snapshot)

// Orchestrator runs one turn at a time: append the user message, call the
// backend, fold the result into the session, notify. It holds no
// conversational state of its own; everything lives in the Session passed
// to each call.
type Orchestrator struct {
	client backend.Client
	logger *logger.Logger
	notify Notifier
}

// New creates an orchestrator. notify may be nil.
func New(client backend.Client, log *logger.Logger, notify Notifier) *Orchestrator {
	if notify == nil {
		notify = func(model.Snapshot) {}
	}
	return &Orchestrator{client: client, logger: log, notify: notify}
}

// HandleUserInput runs one turn to completion and returns the post-turn
// snapshot. A transport failure is not an error from the caller's point of
// view: it is recorded as a single synthetic assistant message, and the
// conversation identifier and prior results are left untouched so the same
// query can be retried without losing context. The only error returned is
// ErrEmptyMessage. Either the whole backend response is folded into the
// session or none of it is.
func (o *Orchestrator) HandleUserInput(ctx context.Context, sess *session.Session, text string) (model.Snapshot, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Snapshot{}, ErrEmptyMessage
	}

	sess.BeginTurn()
	defer sess.EndTurn()

	mode := sess.Mode()
	conversationID := sess.ConversationID()
	log := o.logger.WithTurn(middleware.GetCorrelationID(ctx), sess.ID(), string(mode))

	sess.AppendUserMessage(text)
	sess.Debugf("sending message in mode %s (conversation %q)", mode, conversationID)

	start := time.Now()
	resp, err := o.client.Send(ctx, text, mode, conversationID)
	if err != nil {
		o.failTurn(log, sess, err)
	} else {
		o.completeTurn(log, sess, mode, resp, time.Since(start))
	}

	snap := sess.Snapshot()
	o.notify(snap)
	return snap, nil
}

func (o *Orchestrator) completeTurn(log *logger.Logger, sess *session.Session, mode model.Mode, resp *backend.ChatResponse, elapsed time.Duration) {
	sess.ApplyResponse(resp)
	if resp.SearchResults != nil {
		sess.Debugf("results replaced: %d categories", len(resp.SearchResults))
	}

	metrics.TurnsTotal.WithLabelValues(string(mode), "ok").Inc()
	results := sess.Snapshot().Results
	for _, category := range []string{model.CategoryFlight, model.CategoryHotel, model.CategoryPlace} {
		if n := results.Count(category); n > 0 {
			metrics.ResultItemsTotal.WithLabelValues(category).Add(float64(n))
		}
	}

	log.Info("turn completed", zap.Duration("duration", elapsed))
}

func (o *Orchestrator) failTurn(log *logger.Logger, sess *session.Session, err error) {
	msg := "Error: unable to get a response from the assistant."
	var terr *backend.TransportError
	if errors.As(err, &terr) && terr.Kind == backend.KindHTTP {
		msg = fmt.Sprintf("Error: unable to get a response from the assistant. Status code: %d", terr.StatusCode)
	}
	sess.AppendAssistantMessage(msg)
	sess.Debugf("turn failed: %v", err)

	metrics.TurnsTotal.WithLabelValues(string(sess.Mode()), "error").Inc()
	log.Warn("turn failed", zap.Error(err))
}

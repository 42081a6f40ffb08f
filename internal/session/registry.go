package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rahalah/travel-gateway/pkg/logger"
	"github.com/rahalah/travel-gateway/pkg/metrics"
)

// ErrNotFound is returned when a session identifier is unknown.
var ErrNotFound = errors.New("session not found")

// Registry tracks live sessions by identifier. Sessions live only in memory;
// when the process ends, so do they.
type Registry struct {
	logger *logger.Logger
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a registry whose sessions are evicted after ttl of
// inactivity by Sweep.
func NewRegistry(ttl time.Duration, log *logger.Logger) *Registry {
	return &Registry{
		logger:   log,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session with a fresh identifier.
func (r *Registry) Create() *Session {
	s := New(uuid.Must(uuid.NewV7()).String())

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	metrics.SessionsActive.Inc()
	r.logger.Info("session created", zap.String("session_id", s.ID()))
	return s
}

// Get retrieves a session by identifier.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		metrics.SessionsActive.Dec()
		r.logger.Info("session deleted", zap.String("session_id", id))
	}
}

// Sweep evicts sessions idle longer than the TTL and returns how many were
// removed. The caller runs it periodically.
func (r *Registry) Sweep() int {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.UpdatedAt().Before(cutoff) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		metrics.SessionsActive.Dec()
		r.logger.Info("session expired", zap.String("session_id", id))
	}
	return len(expired)
}

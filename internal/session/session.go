// Package session holds the in-memory conversational state of the gateway.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/rahalah/travel-gateway/internal/backend"
	"github.com/rahalah/travel-gateway/internal/model"
)

// debugTrailLimit bounds the per-session diagnostic trail.
const debugTrailLimit = 100

// Session is the conversational state for one gateway client: the active
// mode, the message history, the backend conversation identifier, and the
// last-known search results. All mutation goes through its methods.
//
// Two locks protect it: the turn lock serializes whole turns (held across
// the backend call, so a session never has two in-flight turns) and mode
// switches, while the state lock guards individual reads and writes so
// snapshots stay consistent.
type Session struct {
	id      string
	created time.Time

	turnMu sync.Mutex

	mu             sync.RWMutex
	mode           model.Mode
	conversationID string
	messages       []model.Message
	results        model.ResultSet
	debug          []string
	updated        time.Time
}

// New creates a session in the default mode.
func New(id string) *Session {
	now := time.Now()
	return &Session{
		id:      id,
		mode:    model.DefaultMode,
		created: now,
		updated: now,
	}
}

// ID returns the gateway session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the active mode.
func (s *Session) Mode() model.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// ConversationID returns the backend conversation identifier, or "" when no
// conversation has been started.
func (s *Session) ConversationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversationID
}

// UpdatedAt returns the time of the last mutation.
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// BeginTurn acquires the turn lock. Exactly one turn runs at a time per
// session; a second concurrent turn blocks here until the first completes.
func (s *Session) BeginTurn() { s.turnMu.Lock() }

// EndTurn releases the turn lock.
func (s *Session) EndTurn() { s.turnMu.Unlock() }

// SwitchMode changes the active mode. Switching to a different mode
// atomically clears the message history, conversation identifier, and
// results: a stale conversation must never continue under another mode.
// Switching to the current mode is a no-op. Reports whether a reset
// happened.
//
// The switch takes the turn lock, so it waits for a turn in flight to
// finish; otherwise the turn's response would be folded into the freshly
// reset session under the new mode.
func (s *Session) SwitchMode(m model.Mode) bool {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if m == s.mode {
		return false
	}

	s.mode = m
	s.messages = nil
	s.conversationID = ""
	s.results = model.ResultSet{}
	s.updated = time.Now()
	return true
}

// AppendUserMessage appends a user message to the history.
func (s *Session) AppendUserMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, model.Message{Role: model.RoleUser, Content: text})
	s.updated = time.Now()
}

// AppendAssistantMessage appends an assistant message to the history. The
// orchestrator uses this to record a failed turn as a synthetic reply, so a
// user message never goes unanswered.
func (s *Session) AppendAssistantMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, model.Message{Role: model.RoleAssistant, Content: text})
	s.updated = time.Now()
}

// ApplyResponse folds one successful backend response into the session: the
// assistant reply is appended, a non-empty session identifier replaces the
// current conversation identifier, and a present search_results mapping
// replaces the previous results wholesale. An absent mapping (nil) leaves
// prior results untouched; a present-but-empty one clears them.
func (s *Session) ApplyResponse(resp *backend.ChatResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, model.Message{Role: model.RoleAssistant, Content: resp.Response})
	if resp.SessionID != "" {
		s.conversationID = resp.SessionID
	}
	if resp.SearchResults != nil {
		s.results = model.ParseResults(resp.SearchResults)
	}
	s.updated = time.Now()
}

// Debugf appends a formatted line to the bounded diagnostic trail.
func (s *Session) Debugf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debug = append(s.debug, fmt.Sprintf(format, args...))
	if len(s.debug) > debugTrailLimit {
		s.debug = s.debug[len(s.debug)-debugTrailLimit:]
	}
}

// Snapshot returns a read-only copy for the presentation layer. Result
// slices are shared rather than copied; they are replaced wholesale on each
// turn and never mutated in place.
func (s *Session) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]model.Message, len(s.messages))
	copy(msgs, s.messages)
	debug := make([]string, len(s.debug))
	copy(debug, s.debug)

	return model.Snapshot{
		SessionID:      s.id,
		Mode:           s.mode,
		ConversationID: s.conversationID,
		Messages:       msgs,
		Results:        s.results,
		Debug:          debug,
		UpdatedAt:      s.updated,
	}
}

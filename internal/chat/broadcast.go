package chat

import (
	"sync"

	"github.com/rahalah/travel-gateway/internal/model"
)

// Broadcaster fans post-turn snapshots out to event-stream subscribers,
// keyed by session identifier.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[string]map[chan model.Snapshot]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[string]map[chan model.Snapshot]struct{})}
}

// Subscribe registers a listener for one session's state changes. The
// returned cancel function must be called when the listener goes away.
func (b *Broadcaster) Subscribe(sessionID string) (<-chan model.Snapshot, func()) {
	ch := make(chan model.Snapshot, 1)

	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan model.Snapshot]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[sessionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(b.subs, sessionID)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber of its session. A slow
// subscriber misses the update rather than blocking the turn; the next
// snapshot supersedes it anyway.
func (b *Broadcaster) Publish(snap model.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[snap.SessionID] {
		select {
		case ch <- snap:
		default:
		}
	}
}

package services

import (
	"sync"
	"time"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

// SessionListener receives the identity of a session, or nil once it has ended.
type SessionListener func(identity *models.Identity)

type subscription struct {
	mu       sync.Mutex
	listener SessionListener
	timer    *time.Timer
	ended    bool
}

// deliver calls the listener in order and never after the session has ended
func (s *subscription) deliver(identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if identity == nil {
		s.ended = true
	}
	s.listener(identity)
}

// SessionHub fans session transitions out to subscribers of one token id.
type SessionHub struct {
	mu   sync.Mutex
	subs map[string]map[int]*subscription
	next int
}

// NewSessionHub creates an empty hub
func NewSessionHub() *SessionHub {
	return &SessionHub{subs: make(map[string]map[int]*subscription)}
}

// Subscribe calls listener once with current and again on every later transition of tokenID.
// The subscription is registered before current is delivered, so a transition published
// meanwhile is delivered right after it. A live session also ends by itself at expiresAt.
// The returned function unsubscribes.
func (h *SessionHub) Subscribe(tokenID string, current *models.Identity, expiresAt time.Time, listener SessionListener) func() {
	if current == nil || tokenID == "" {
		listener(current)
		return func() {}
	}

	sub := &subscription{listener: listener}
	sub.mu.Lock()

	h.mu.Lock()
	h.next++
	key := h.next
	if h.subs[tokenID] == nil {
		h.subs[tokenID] = make(map[int]*subscription)
	}
	h.subs[tokenID][key] = sub
	if !expiresAt.IsZero() {
		sub.timer = time.AfterFunc(time.Until(expiresAt), func() {
			h.Publish(tokenID, nil)
		})
	}
	h.mu.Unlock()

	listener(current)
	sub.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub.timer != nil {
				sub.timer.Stop()
			}
			delete(h.subs[tokenID], key)
			if len(h.subs[tokenID]) == 0 {
				delete(h.subs, tokenID)
			}
		})
	}
}

// Publish notifies every subscriber of tokenID. A nil identity ends the session and
// drops its subscribers.
func (h *SessionHub) Publish(tokenID string, identity *models.Identity) {
	h.mu.Lock()
	subs := make([]*subscription, 0, len(h.subs[tokenID]))
	for _, s := range h.subs[tokenID] {
		subs = append(subs, s)
	}
	if identity == nil {
		for _, s := range h.subs[tokenID] {
			if s.timer != nil {
				s.timer.Stop()
			}
		}
		delete(h.subs, tokenID)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.deliver(identity)
	}
}

// Subscribers counts live subscriptions of tokenID
func (h *SessionHub) Subscribers(tokenID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[tokenID])
}

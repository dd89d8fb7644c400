package store

import (
	"sync"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
)

// Subscriptions is the in-memory subscriber → preference map. The
// scheduler mutates it inside its per-subscriber critical section; the
// map lock here is held only for the duration of one map operation, so
// lookups for different subscribers never wait on each other's I/O.
type Subscriptions struct {
	mu    sync.RWMutex
	prefs map[domain.SubscriberID]domain.Preference
}

func NewSubscriptions() *Subscriptions {
	return &Subscriptions{prefs: make(map[domain.SubscriberID]domain.Preference)}
}

// Upsert replaces the preference for id wholesale and returns the
// previous one, if any.
func (s *Subscriptions) Upsert(id domain.SubscriberID, p domain.Preference) (domain.Preference, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.prefs[id]
	s.prefs[id] = p
	return old, ok
}

func (s *Subscriptions) Get(id domain.SubscriberID) (domain.Preference, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefs[id]
	return p, ok
}

func (s *Subscriptions) Remove(id domain.SubscriberID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prefs, id)
}

// Len reports the number of stored preferences.
func (s *Subscriptions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prefs)
}

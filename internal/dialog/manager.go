package dialog

import (
	"sync"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
)

// Manager holds live onboarding sessions keyed by subscriber. Sessions are
// created on the first event for an id and discarded once the dialog
// reaches a terminal step, so the next Start begins fresh.
type Manager struct {
	mu       sync.Mutex
	sessions map[domain.SubscriberID]Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[domain.SubscriberID]Session)}
}

// Apply runs one event through the subscriber's session and returns the
// resulting effects.
func (m *Manager) Apply(id domain.SubscriberID, ev Event) []Effect {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, effects := Next(m.sessions[id], ev)
	if next.Step == 0 || next.Step == StepDone {
		delete(m.sessions, id)
	} else {
		m.sessions[id] = next
	}
	return effects
}

// Session returns the current session for id, if one is in flight.
func (m *Manager) Session(id domain.SubscriberID) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

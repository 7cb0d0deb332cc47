package session

import "time"

type Kind int

const (
	SignedIn Kind = iota + 1
	SignedOut
)

func (k Kind) String() string {
	switch k {
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// Event announces a session change. Email is set for both kinds; Identity only on sign in.
type Event struct {
	Kind     Kind
	Email    string
	Identity *Identity
	At       time.Time
}

const subscriberBuffer = 16

// Subscribe returns a channel of session events and a function that removes it.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextID
	m.nextID++
	m.subs[id] = ch

	return ch, func() {
		m.subsMu.Lock()
		defer m.subsMu.Unlock()
		if sub, ok := m.subs[id]; ok {
			close(sub)
			delete(m.subs, id)
		}
	}
}

// Publish never blocks; a subscriber that is not keeping up misses the event.
func (m *Manager) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = m.now()
	}

	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

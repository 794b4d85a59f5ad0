package terminal

import "sync"

// EventKind labels a state change.
type EventKind string

const (
	EventTick      EventKind = "tick"
	EventSelection EventKind = "selection"
	EventNews      EventKind = "news"
	EventAnalysis  EventKind = "analysis"
)

// Event notifies subscribers that a slice of terminal state changed. It
// carries no payload: consumers read the state they care about through the
// controller, which always reflects the latest published values.
type Event struct {
	Kind   EventKind
	Symbol string
}

const subscriberBuffer = 16

type subscribers struct {
	mu     sync.Mutex
	nextID int
	chans  map[int]chan Event
}

func newSubscribers() *subscribers {
	return &subscribers{chans: make(map[int]chan Event)}
}

// Subscribe registers a new listener. The returned cancel function
// unregisters it and closes the channel.
func (t *Terminal) Subscribe() (<-chan Event, func()) {
	t.subs.mu.Lock()
	defer t.subs.mu.Unlock()

	id := t.subs.nextID
	t.subs.nextID++
	ch := make(chan Event, subscriberBuffer)
	t.subs.chans[id] = ch

	cancel := func() {
		t.subs.mu.Lock()
		defer t.subs.mu.Unlock()
		if existing, ok := t.subs.chans[id]; ok {
			delete(t.subs.chans, id)
			close(existing)
		}
	}
	return ch, cancel
}

// publish fans the event out without blocking: a subscriber that has fallen
// behind misses the notification and catches up on its next read.
func (s *subscribers) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.chans {
		select {
		case ch <- ev:
		default:
		}
	}
}

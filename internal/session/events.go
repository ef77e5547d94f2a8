package session

import "sync"

type EventType string

const (
	EventState   EventType = "state"
	EventCatalog EventType = "catalog"
	EventProfile EventType = "profile"
	EventHistory EventType = "history"
)

// Event tells subscribers which part of the session changed.
type Event struct {
	Type EventType `json:"type"`
}

// Broker is an in-process pub/sub for session change events.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Event]struct{})}
}

func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

func (b *Broker) Publish(e Event) {
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// Slow subscriber.
		}
	}
	b.mu.RUnlock()
}

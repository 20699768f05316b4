package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"corecrew/internal/requestctx"
)

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionRead      = "read"
	ActionProcessed = "processed"
	ActionGenerated = "generated"
	ActionApproved  = "approved"
	ActionRejected  = "rejected"
)

// Event announces a persisted change to one entity of a collection.
type Event struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entityId"`
	Summary    string    `json:"summary,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type subscription struct {
	name string
	ch   chan Event
}

// Broker fans events out to subscribers without ever blocking the publisher.
// A subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]*subscription
	nextID int
	onDrop func(subscriber string)
	now    func() time.Time
}

func NewBroker() *Broker {
	return &Broker{subs: map[int]*subscription{}, now: time.Now}
}

// OnDrop registers a hook invoked whenever a subscriber misses an event.
func (b *Broker) OnDrop(fn func(subscriber string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onDrop = fn
}

func (b *Broker) Subscribe(name string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	sub := &subscription{name: name, ch: make(chan Event, buffer)}
	b.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

func (b *Broker) Publish(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = b.now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestctx.GetRequestID(ctx)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			slog.Warn("event dropped", "subscriber", sub.name, "collection", event.Collection, "action", event.Action)
			if b.onDrop != nil {
				b.onDrop(sub.name)
			}
		}
	}
}

func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Discard is a Publisher that drops everything.
type Discard struct{}

func (Discard) Publish(context.Context, Event) {}

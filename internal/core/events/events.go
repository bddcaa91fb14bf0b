package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/behave/internal/core/bt"
)

// TickEvent describes the outcome of one tree tick, published by the
// agent layer after every Step.
type TickEvent struct {
	AgentID string
	Agent   string
	Tree    string
	Status  bt.Status
	Err     error
	At      time.Time
}

// Handler receives published tick events. Handlers run synchronously
// on the publishing goroutine and must not block.
type Handler func(ev TickEvent)

// Subscription is a cancellable handle returned by Subscribe.
type Subscription struct {
	id     string
	cancel func()
}

func (s *Subscription) ID() string { return s.id }

func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Bus is a small in-memory pub/sub for tick events. It is safe for
// concurrent publishers and subscribers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]Handler)}
}

// Subscribe registers a handler for every published event.
func (b *Bus) Subscribe(h Handler) *Subscription {
	id := uuid.NewString()
	b.mu.Lock()
	b.handlers[id] = h
	b.mu.Unlock()
	return &Subscription{id: id, cancel: func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}}
}

// Publish delivers the event to every active subscriber.
func (b *Bus) Publish(ev TickEvent) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ev)
	}
}

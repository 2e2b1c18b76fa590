package notify

import (
	"sync"
)

// Hub is a synchronous observer registry. Subscribers are invoked inline on
// Publish, on the publisher's goroutine, so a published change is fully
// observed before Publish returns.
type Hub[T any] struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(T)
}

// NewHub creates a new Hub instance
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subscribers: make(map[int]func(T)),
	}
}

// Subscribe registers an observer and returns a cleanup function. The cleanup
// must be called on teardown; a leaked subscription keeps firing against
// stale state.
func (h *Hub[T]) Subscribe(fn func(T)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subscribers[id] = fn

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
	return cleanup
}

// Publish delivers the event to every current subscriber.
func (h *Hub[T]) Publish(event T) {
	h.mu.Lock()
	fns := make([]func(T), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub[T]) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

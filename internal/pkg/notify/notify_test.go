package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	h := NewHub[string]()

	var got1, got2 []string
	h.Subscribe(func(s string) { got1 = append(got1, s) })
	h.Subscribe(func(s string) { got2 = append(got2, s) })

	h.Publish("a")
	h.Publish("b")

	assert.Equal(t, []string{"a", "b"}, got1)
	assert.Equal(t, []string{"a", "b"}, got2)
}

func TestHub_PublishIsSynchronous(t *testing.T) {
	h := NewHub[int]()

	seen := 0
	h.Subscribe(func(int) { seen++ })

	h.Publish(1)
	// The observer must have run before Publish returned.
	assert.Equal(t, 1, seen)
}

func TestHub_CleanupStopsDelivery(t *testing.T) {
	h := NewHub[int]()

	var got []int
	cleanup := h.Subscribe(func(v int) { got = append(got, v) })

	h.Publish(1)
	cleanup()
	h.Publish(2)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 0, h.SubscriberCount())
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	h := NewHub[int]()

	cleanup := h.Subscribe(func(int) {})
	other := h.Subscribe(func(int) {})
	_ = other

	cleanup()
	cleanup()

	assert.Equal(t, 1, h.SubscriberCount())
}

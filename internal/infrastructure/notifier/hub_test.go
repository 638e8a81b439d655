package notifier

import (
	"testing"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(name string) shared.ChangeEvent {
	return shared.NewChangeEvent(name, shared.VerbCreated, uuid.New(), nil)
}

func TestHubPublish(t *testing.T) {
	t.Run("no subscribers is a no-op", func(t *testing.T) {
		hub := NewHub()
		assert.NotPanics(t, func() {
			hub.Publish(event("supplier"))
		})
		assert.Equal(t, 0, hub.SubscriberCount())
	})

	t.Run("delivers to every subscriber", func(t *testing.T) {
		hub := NewHub()
		defer hub.Close()

		a, cancelA := hub.Subscribe()
		defer cancelA()
		b, cancelB := hub.Subscribe()
		defer cancelB()
		require.Equal(t, 2, hub.SubscriberCount())

		hub.Publish(event("supplier"))

		for _, ch := range []<-chan shared.ChangeEvent{a, b} {
			select {
			case got := <-ch:
				assert.Equal(t, "supplierCreated", got.Name)
			case <-time.After(time.Second):
				t.Fatal("subscriber did not receive the event")
			}
		}
	})

	t.Run("drops events for a full subscriber without blocking", func(t *testing.T) {
		hub := NewHub(WithBufferSize(1))
		defer hub.Close()

		ch, cancel := hub.Subscribe()
		defer cancel()

		done := make(chan struct{})
		go func() {
			hub.Publish(event("first"))
			hub.Publish(event("second"))
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked on a full subscriber")
		}

		got := <-ch
		assert.Equal(t, "firstCreated", got.Name)
		select {
		case extra := <-ch:
			t.Fatalf("expected the second event to be dropped, got %s", extra.Name)
		default:
		}
	})
}

func TestHubSubscribe(t *testing.T) {
	t.Run("cancel detaches and closes the channel", func(t *testing.T) {
		hub := NewHub()
		defer hub.Close()

		ch, cancel := hub.Subscribe()
		cancel()
		assert.Equal(t, 0, hub.SubscriberCount())

		_, open := <-ch
		assert.False(t, open)

		assert.NotPanics(t, cancel)
	})

	t.Run("events before subscribe are not replayed", func(t *testing.T) {
		hub := NewHub()
		defer hub.Close()

		hub.Publish(event("early"))
		ch, cancel := hub.Subscribe()
		defer cancel()

		select {
		case got := <-ch:
			t.Fatalf("unexpected replayed event %s", got.Name)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	ch, _ := hub.Subscribe()

	hub.Close()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount())

	assert.NotPanics(t, func() {
		hub.Publish(event("late"))
		hub.Close()
	})

	late, cancel := hub.Subscribe()
	defer cancel()
	_, open = <-late
	assert.False(t, open)
}

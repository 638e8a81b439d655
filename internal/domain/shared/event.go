package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// ChangeVerb is the mutation kind carried in a change event name
type ChangeVerb string

const (
	VerbCreated ChangeVerb = "Created"
	VerbUpdated ChangeVerb = "Updated"
	VerbDeleted ChangeVerb = "Deleted"
)

// ChangePayload carries the subject of a change event
type ChangePayload struct {
	ID   uuid.UUID `json:"id"`
	Data any       `json:"data"`
}

// ChangeEvent is the ephemeral message broadcast after a successful mutation.
// It is never persisted; subscribers that attach later do not see it.
type ChangeEvent struct {
	Name    string        `json:"name"`
	Payload ChangePayload `json:"payload"`
}

// NewChangeEvent builds a change event named "<resource><Verb>"
func NewChangeEvent(resource string, verb ChangeVerb, id uuid.UUID, data any) ChangeEvent {
	return ChangeEvent{
		Name:    fmt.Sprintf("%s%s", resource, verb),
		Payload: ChangePayload{ID: id, Data: data},
	}
}

// ChangeNotifier publishes change events to whoever is listening right now.
// Publish is fire-and-forget: it must not block, must not fail the caller,
// and is a no-op when nobody is subscribed. The mutation is already durable
// before Publish is invoked, so the notifier is never on the correctness path.
type ChangeNotifier interface {
	Publish(event ChangeEvent)
}

// NopNotifier discards every event. Useful in tests and tools.
type NopNotifier struct{}

// Publish discards the event
func (NopNotifier) Publish(ChangeEvent) {}

package ecs

// Event is one entry on the world event queue. Data holds the typed payload.
type Event struct {
	Type string
	Data any
}

const EventGroundedChanged = "grounded_changed"

// GroundedEvent is emitted when a floating controller lands or leaves the
// ground.
type GroundedEvent struct {
	Entity   Entity
	Grounded bool
}

// EventQueue collects events raised during a tick. The scheduler clears it
// once the tick ends, so readers drain it from a late stage.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainOf removes the events whose payload is a T and returns the payloads
// in order. Other events stay queued.
func DrainOf[T any](q *EventQueue) []T {
	if q == nil {
		return nil
	}
	var out []T
	kept := q.items[:0]
	for _, evt := range q.items {
		if data, ok := evt.Data.(T); ok {
			out = append(out, data)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

package registry

import "github.com/extsrc-labs/extsrc/internal/source"

// EventKind names a registry event.
type EventKind string

const (
	EventAdded     EventKind = "added"
	EventRemoved   EventKind = "removed"
	EventChanged   EventKind = "changed"
	EventReordered EventKind = "reordered"
)

// Event is delivered to observers after a mutation has fully committed.
// Source is nil for EventReordered.
type Event struct {
	Kind     EventKind
	Registry *Registry
	Source   *source.Source
}

// On subscribes fn to events of the given kind. Handlers run synchronously,
// in subscription order. The returned function removes the subscription.
func (r *Registry) On(kind EventKind, fn func(Event)) (off func()) {
	return r.events.On(string(kind), fn)
}

func (r *Registry) emit(kind EventKind, s *source.Source) {
	r.events.Emit(string(kind), Event{Kind: kind, Registry: r, Source: s})
}

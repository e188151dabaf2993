package event

// Channel dispatches payloads of type E to handlers subscribed by name.
// The zero value is ready to use. A Channel is not safe for concurrent use.
type Channel[E any] struct {
	next     int
	handlers map[string][]subscription[E]
}

type subscription[E any] struct {
	id int
	fn func(E)
}

// On subscribes fn to events named name and returns a function that removes
// the subscription. Calling the returned function more than once is harmless.
func (c *Channel[E]) On(name string, fn func(E)) (off func()) {
	if c.handlers == nil {
		c.handlers = make(map[string][]subscription[E])
	}
	c.next++
	id := c.next
	c.handlers[name] = append(c.handlers[name], subscription[E]{id: id, fn: fn})

	return func() { c.remove(name, id) }
}

// Emit calls every handler subscribed to name with payload. Subscriptions
// added or removed by a handler take effect from the next Emit.
func (c *Channel[E]) Emit(name string, payload E) {
	subs := c.handlers[name]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription[E], len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.fn(payload)
	}
}

// Len returns the number of handlers subscribed to name.
func (c *Channel[E]) Len(name string) int {
	return len(c.handlers[name])
}

// Reset drops every subscription.
func (c *Channel[E]) Reset() {
	c.handlers = nil
}

func (c *Channel[E]) remove(name string, id int) {
	subs := c.handlers[name]
	for i, s := range subs {
		if s.id == id {
			c.handlers[name] = append(subs[:i:i], subs[i+1:]...)
			if len(c.handlers[name]) == 0 {
				delete(c.handlers, name)
			}
			return
		}
	}
}

package source

import "sync/atomic"

// IDGenerator hands out monotonically increasing source ids. Ids are never
// reused for the lifetime of the generator. It is safe for concurrent use,
// so several registries may share one.
type IDGenerator struct {
	last atomic.Int64
}

// NewIDGenerator returns a generator whose first id is 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next unused id.
func (g *IDGenerator) Next() int {
	return int(g.last.Add(1))
}

// New creates a source carrying the next id.
func (g *IDGenerator) New(path string, enabled bool) *Source {
	return New(g.Next(), path, enabled)
}

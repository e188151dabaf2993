package source

import (
	"os"

	"github.com/extsrc-labs/extsrc/internal/event"
	"github.com/extsrc-labs/extsrc/internal/persist"
)

// Kind names the field a Change refers to. Kinds double as event names on
// the source's channel.
type Kind string

const (
	KindPath    Kind = "path"
	KindEnabled Kind = "enabled"
)

// Change is the payload of a source event. Previous holds the value the
// field had before the mutation (a string for KindPath, a bool for
// KindEnabled).
type Change struct {
	Kind     Kind
	Source   *Source
	Previous any
}

// PreviousPath returns the path before a KindPath change, or the current
// path for any other kind.
func (c Change) PreviousPath() string {
	if p, ok := c.Previous.(string); ok && c.Kind == KindPath {
		return p
	}
	return c.Source.Path()
}

// PreviousEnabled returns the flag before a KindEnabled change, or the
// current flag for any other kind.
func (c Change) PreviousEnabled() bool {
	if e, ok := c.Previous.(bool); ok && c.Kind == KindEnabled {
		return e
	}
	return c.Source.Enabled()
}

// Source is one extension source directory.
type Source struct {
	id      int
	path    string
	enabled bool
	events  event.Channel[Change]
}

// New returns a source with an explicit id. Most callers go through an
// IDGenerator instead.
func New(id int, path string, enabled bool) *Source {
	return &Source{id: id, path: path, enabled: enabled}
}

// ID returns the process-local identifier. It is not persisted.
func (s *Source) ID() int { return s.id }

// Path returns the source directory.
func (s *Source) Path() string { return s.path }

// Enabled reports whether the source takes part in module loading.
func (s *Source) Enabled() bool { return s.enabled }

// SetPath changes the directory and emits a KindPath event. It reports
// whether anything changed; setting the current value is a no-op.
func (s *Source) SetPath(path string) bool {
	if path == s.path {
		return false
	}
	prev := s.path
	s.path = path
	s.events.Emit(string(KindPath), Change{Kind: KindPath, Source: s, Previous: prev})
	return true
}

// SetEnabled changes the flag and emits a KindEnabled event. It reports
// whether anything changed; setting the current value is a no-op.
func (s *Source) SetEnabled(enabled bool) bool {
	if enabled == s.enabled {
		return false
	}
	prev := s.enabled
	s.enabled = enabled
	s.events.Emit(string(KindEnabled), Change{Kind: KindEnabled, Source: s, Previous: prev})
	return true
}

// Events returns the channel on which the source announces changes.
func (s *Source) Events() *event.Channel[Change] { return &s.events }

// PathExists reports whether anything currently exists at the source path.
func (s *Source) PathExists() bool {
	if s.path == "" {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// TransportRecord is the presentation form of a source. Unlike the
// persisted form it carries the id.
type TransportRecord struct {
	ID         int    `json:"id"`
	Path       string `json:"path"`
	PathExists bool   `json:"path_exists"`
	Enabled    bool   `json:"enabled"`
}

// TransportRecord returns the presentation form of s.
func (s *Source) TransportRecord() TransportRecord {
	return TransportRecord{
		ID:         s.id,
		Path:       s.path,
		PathExists: s.PathExists(),
		Enabled:    s.enabled,
	}
}

// Record returns the persisted form of s.
func (s *Source) Record() persist.Record {
	return persist.Record{Path: s.path, Enabled: s.enabled}
}

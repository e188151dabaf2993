package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/extsrc-labs/extsrc/internal/event"
	"github.com/extsrc-labs/extsrc/internal/persist"
	"github.com/extsrc-labs/extsrc/internal/reorder"
	"github.com/extsrc-labs/extsrc/internal/source"
	"github.com/rs/zerolog"
)

// Registry is the ordered set of extension sources. Registry order is load
// order and display order. No two sources share a path.
//
// A Registry is not safe for concurrent use; the host serializes calls.
type Registry struct {
	sources    []*source.Source
	unobserve  map[int]func()
	searchPath SearchPath
	loader     Loader
	storage    string
	ids        *source.IDGenerator
	log        zerolog.Logger
	events     event.Channel[Event]

	// updating suppresses the per-source observer while Update applies a
	// patch, so the patch produces a single changed event.
	updating bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithIDGenerator shares an id generator with other registries.
func WithIDGenerator(ids *source.IDGenerator) Option {
	return func(r *Registry) { r.ids = ids }
}

// New returns a registry persisted at storage. If storage exists the
// registry is seeded from it; otherwise it starts empty. A nil searchPath
// or loader is replaced by one that does nothing.
func New(storage string, searchPath SearchPath, loader Loader, opts ...Option) (*Registry, error) {
	if searchPath == nil {
		searchPath = nopSearchPath{}
	}
	if loader == nil {
		loader = nopLoader{}
	}

	r := &Registry{
		unobserve:  make(map[int]func()),
		searchPath: searchPath,
		loader:     loader,
		storage:    storage,
		ids:        source.NewIDGenerator(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if storage == "" {
		return r, nil
	}
	if _, err := os.Stat(storage); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Debug().Str("storage", storage).Msg("no sources file, starting empty")
			return r, nil
		}
		return nil, fmt.Errorf("checking sources file %s: %w", storage, err)
	}
	if _, err := r.Import(storage); err != nil {
		return nil, err
	}
	return r, nil
}

// Storage returns the file Save writes to.
func (r *Registry) Storage() string { return r.storage }

// Len returns the number of sources.
func (r *Registry) Len() int { return len(r.sources) }

// Sources returns the sources in registry order. The slice is a copy; the
// sources are not.
func (r *Registry) Sources() []*source.Source {
	return slices.Clone(r.sources)
}

// FindByID returns the source with the given id, or nil.
func (r *Registry) FindByID(id int) *source.Source {
	if i := r.indexOf(id); i >= 0 {
		return r.sources[i]
	}
	return nil
}

// FindByPath returns the source registered at path, or nil.
func (r *Registry) FindByPath(path string) *source.Source {
	for _, s := range r.sources {
		if s.Path() == path {
			return s
		}
	}
	return nil
}

// ContainsPath reports whether a source is registered at path.
func (r *Registry) ContainsPath(path string) bool {
	return r.FindByPath(path) != nil
}

func (r *Registry) indexOf(id int) int {
	return slices.IndexFunc(r.sources, func(s *source.Source) bool { return s.ID() == id })
}

// Add appends a source for path. It returns nil, and changes nothing, when
// path is already registered. An enabled source is put on the search path
// and its modules are loaded before observers hear about it.
func (r *Registry) Add(path string, enabled bool) *source.Source {
	if r.ContainsPath(path) {
		r.log.Debug().Str("path", path).Msg("source already registered")
		return nil
	}
	if enabled {
		r.searchPath.Append(path)
	}
	return r.insert(path, enabled)
}

// insert creates and announces a source whose search-path entry, if any,
// is already in place.
func (r *Registry) insert(path string, enabled bool) *source.Source {
	s := r.ids.New(path, enabled)
	r.sources = append(r.sources, s)
	r.observe(s)

	if enabled {
		r.loader.LoadAllIn(path)
	}
	r.log.Debug().Int("id", s.ID()).Str("path", path).Bool("enabled", enabled).Msg("source added")
	r.emit(EventAdded, s)
	return s
}

// Remove deletes the source with the given id and returns it.
func (r *Registry) Remove(id int) (*source.Source, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("removing source %d: %w", id, ErrNotFound)
	}
	s := r.sources[i]

	r.sources = slices.Delete(r.sources, i, i+1)
	if s.Enabled() {
		r.searchPath.Remove(s.Path())
	}
	if off, ok := r.unobserve[id]; ok {
		off()
		delete(r.unobserve, id)
	}

	r.log.Debug().Int("id", id).Str("path", s.Path()).Msg("source removed")
	r.emit(EventRemoved, s)
	return s, nil
}

// Patch lists the fields Update should change. Nil fields are left alone.
type Patch struct {
	Path    *string
	Enabled *bool
}

// Update applies patch to the source with the given id. A patch that would
// not change anything is a no-op and emits nothing.
func (r *Registry) Update(id int, patch Patch) (*source.Source, error) {
	s := r.FindByID(id)
	if s == nil {
		return nil, fmt.Errorf("updating source %d: %w", id, ErrNotFound)
	}

	oldPath, wasEnabled := s.Path(), s.Enabled()
	newPath, nowEnabled := oldPath, wasEnabled
	if patch.Path != nil {
		newPath = *patch.Path
	}
	if patch.Enabled != nil {
		nowEnabled = *patch.Enabled
	}
	if newPath == oldPath && nowEnabled == wasEnabled {
		return s, nil
	}

	if newPath != oldPath {
		if other := r.FindByPath(newPath); other != nil && other != s {
			return nil, fmt.Errorf("updating source %d to %q (held by source %d): %w",
				id, newPath, other.ID(), ErrPathConflict)
		}
	}

	r.updating = true
	s.SetEnabled(nowEnabled)
	s.SetPath(newPath)
	r.updating = false

	r.sync(oldPath, wasEnabled, newPath, nowEnabled)

	r.log.Debug().Int("id", id).Str("path", newPath).Bool("enabled", nowEnabled).Msg("source updated")
	r.emit(EventChanged, s)
	return s, nil
}

// sync moves the search-path entry of a source from its old state to its
// new one and loads the source when it becomes visible at a new path.
func (r *Registry) sync(oldPath string, wasEnabled bool, newPath string, nowEnabled bool) {
	moved := oldPath != newPath
	if wasEnabled && (!nowEnabled || moved) {
		r.searchPath.Remove(oldPath)
	}
	if nowEnabled && (!wasEnabled || moved) {
		r.searchPath.Append(newPath)
		r.loader.LoadAllIn(newPath)
	}
}

// observe keeps the search path in sync when a registry-owned source is
// mutated directly rather than through Update. A direct path change onto a
// path another source holds is reverted and emits nothing.
func (r *Registry) observe(s *source.Source) {
	handle := func(c source.Change) {
		if r.updating {
			return
		}
		if c.Kind == source.KindPath {
			if other := r.FindByPath(s.Path()); other != nil && other != s {
				r.log.Debug().
					Int("id", s.ID()).
					Str("path", s.Path()).
					Int("held_by", other.ID()).
					Msg("direct path change conflicts, reverting")
				r.updating = true
				s.SetPath(c.PreviousPath())
				r.updating = false
				return
			}
		}
		r.sync(c.PreviousPath(), c.PreviousEnabled(), s.Path(), s.Enabled())
		r.log.Debug().Int("id", s.ID()).Str("field", string(c.Kind)).Msg("source changed directly")
		r.emit(EventChanged, s)
	}
	offPath := s.Events().On(string(source.KindPath), handle)
	offEnabled := s.Events().On(string(source.KindEnabled), handle)
	r.unobserve[s.ID()] = func() {
		offPath()
		offEnabled()
	}
}

// Anchor names the source a move is relative to. Exactly one field must be
// set.
type Anchor struct {
	Before *int
	After  *int
}

// Before anchors a move in front of the source with the given id.
func Before(id int) Anchor { return Anchor{Before: &id} }

// After anchors a move behind the source with the given id.
func After(id int) Anchor { return Anchor{After: &id} }

// Move gathers the selected sources at the anchor. Sources in front of the
// insertion point never move; sources from the insertion point on are
// split into the selected ones followed by the rest, each keeping its
// relative order. Ids in selected that are not registered are ignored.
// A reordered event is emitted only if the order actually changed.
func (r *Registry) Move(selected []int, anchor Anchor) error {
	if (anchor.Before == nil) == (anchor.After == nil) {
		return fmt.Errorf("moving sources: exactly one of before or after is required: %w", ErrInvalidArgument)
	}

	targetID, after := 0, false
	if anchor.Before != nil {
		targetID = *anchor.Before
	} else {
		targetID, after = *anchor.After, true
	}
	target := r.indexOf(targetID)
	if target < 0 {
		return fmt.Errorf("moving sources relative to %d: %w", targetID, ErrNotFound)
	}

	chosen := make(map[int]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}
	moved := reorder.Move(r.sources, target, after, func(s *source.Source) bool {
		return chosen[s.ID()]
	})
	if slices.Equal(moved, r.sources) {
		r.log.Debug().Ints("selected", selected).Msg("move left order unchanged")
		return nil
	}

	r.sources = moved
	r.log.Debug().Ints("selected", selected).Int("target", targetID).Bool("after", after).Msg("sources reordered")
	r.emit(EventReordered, nil)
	return nil
}

// Records returns the persisted form of every source in registry order.
func (r *Registry) Records() []persist.Record {
	records := make([]persist.Record, 0, len(r.sources))
	for _, s := range r.sources {
		records = append(records, s.Record())
	}
	return records
}

// Export writes every source, enabled or not, to destination in registry
// order.
func (r *Registry) Export(destination string) error {
	if err := persist.WriteFile(destination, r.Records()); err != nil {
		return err
	}
	r.log.Debug().Str("file", destination).Int("sources", len(r.sources)).Msg("sources exported")
	return nil
}

// Save exports the registry to its storage location.
func (r *Registry) Save() error {
	return r.Export(r.storage)
}

// Import merges the sources listed in the file at src. Records whose path
// is already registered, including earlier records in the same file, are
// skipped; existing sources keep their flag and position. Every new enabled
// path is put on the search path before any new source is loaded, so a
// source's modules can resolve against sources listed after it. The newly
// added sources are returned in file order.
func (r *Registry) Import(src string) ([]*source.Source, error) {
	records, err := persist.ReadFile(src)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	fresh := make([]persist.Record, 0, len(records))
	for _, rec := range records {
		if seen[rec.Path] || r.ContainsPath(rec.Path) {
			continue
		}
		seen[rec.Path] = true
		fresh = append(fresh, rec)
	}

	for _, rec := range fresh {
		if rec.Enabled {
			r.searchPath.Append(rec.Path)
		}
	}

	added := make([]*source.Source, 0, len(fresh))
	for _, rec := range fresh {
		added = append(added, r.insert(rec.Path, rec.Enabled))
	}

	r.log.Debug().
		Str("file", src).
		Int("records", len(records)).
		Int("added", len(added)).
		Msg("sources imported")
	return added, nil
}

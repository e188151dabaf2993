// Package registry owns the ordered set of extension sources. It enforces
// path uniqueness, keeps an external search-path list in step with the
// enabled sources, persists the set as a JSON array, and announces every
// committed mutation to observers.
//
// The registry is single-threaded: it takes no locks and assumes its host
// serializes calls. Persistence is whole-file and unlocked, so two processes
// sharing one sources file overwrite each other's changes.
package registry

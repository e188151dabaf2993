package registry

// SearchPath is the externally owned, order-sensitive directory list the
// registry keeps in sync with its enabled sources.
type SearchPath interface {
	// Append adds path at the end, returning false if it is already present.
	Append(path string) bool
	// Remove deletes path, returning false if it was absent.
	Remove(path string) bool
}

// Loader loads every code module found under a source directory. The
// registry calls it once per add or enable transition and never looks at
// the outcome.
type Loader interface {
	LoadAllIn(path string)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(path string)

// LoadAllIn calls f(path).
func (f LoaderFunc) LoadAllIn(path string) { f(path) }

type nopSearchPath struct{}

func (nopSearchPath) Append(string) bool { return true }
func (nopSearchPath) Remove(string) bool { return true }

type nopLoader struct{}

func (nopLoader) LoadAllIn(string) {}

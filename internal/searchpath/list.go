package searchpath

import (
	"os"
	"slices"
	"strings"
)

// List is an ordered set of directories. The zero value is an empty list.
type List struct {
	paths []string
}

// New returns a list holding paths in order, dropping duplicates and empty
// entries.
func New(paths ...string) *List {
	l := &List{}
	for _, p := range paths {
		if p != "" {
			l.Append(p)
		}
	}
	return l
}

// Parse splits a PATH-style string on os.PathListSeparator.
func Parse(s string) *List {
	if s == "" {
		return New()
	}
	return New(strings.Split(s, string(os.PathListSeparator))...)
}

// Append adds path at the end. It returns false, leaving the list unchanged,
// if path is already present.
func (l *List) Append(path string) bool {
	if l.Contains(path) {
		return false
	}
	l.paths = append(l.paths, path)
	return true
}

// Remove deletes path. It returns false if path was not present.
func (l *List) Remove(path string) bool {
	i := slices.Index(l.paths, path)
	if i < 0 {
		return false
	}
	l.paths = slices.Delete(l.paths, i, i+1)
	return true
}

// Contains reports whether path is on the list.
func (l *List) Contains(path string) bool {
	return slices.Contains(l.paths, path)
}

// Paths returns a copy of the directories in order.
func (l *List) Paths() []string {
	return slices.Clone(l.paths)
}

// Len returns the number of directories.
func (l *List) Len() int { return len(l.paths) }

// String joins the directories with os.PathListSeparator.
func (l *List) String() string {
	return strings.Join(l.paths, string(os.PathListSeparator))
}

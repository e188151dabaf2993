// Package searchpath provides an ordered, duplicate-free list of
// directories consulted during module resolution. It is the default
// search-path collaborator handed to the source registry and renders in the
// same form as the PATH environment variable.
package searchpath

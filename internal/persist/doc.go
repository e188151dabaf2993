// Package persist reads and writes the sources file: a pretty-printed JSON
// array of {"path", "enabled"} records in registry order. The file has no
// envelope or version field, and ids are never written. Files are validated
// against an embedded JSON schema before they are decoded.
package persist

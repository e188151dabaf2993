// Package loader is the default module loader for extension sources. It
// walks a source directory for module.yaml manifests and indexes the
// modules they describe. It never executes module code; the host decides
// what to do with the index.
package loader

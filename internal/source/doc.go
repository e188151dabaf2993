// Package source models a single extension source: a directory the host
// searches when loading code modules, together with an enabled flag and a
// process-local id. Sources announce their own mutations on an event channel.
package source

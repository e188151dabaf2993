// Package event provides a small named publish/subscribe channel. Sources and
// the registry each hold one and announce committed mutations through it.
// Dispatch is synchronous: handlers run on the emitter's stack, in the order
// they subscribed.
package event

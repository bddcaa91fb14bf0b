package bt

import "errors"

// Structural faults. Both mean the tree itself is malformed; the
// engine does not retry or degrade, it surfaces them to the host.
var (
	// ErrChildren is returned by AddChild when the target node's arity
	// forbids the attachment: a leaf, a decorator already holding its
	// child, or a branch node already holding its pair.
	ErrChildren = errors.New("bt: node cannot accept another child")

	// ErrNoChild is returned by Process when a node that requires a
	// child has none. The check is deferred to the first tick, so a
	// fully wired tree never pays for it and a malformed one fails
	// loudly as soon as it runs.
	ErrNoChild = errors.New("bt: node requires a child")
)

package reduce

import "kindkernel/internal/term"

// HoleStore is the reducer and equality engine's view of the hole
// registry: enough to read an assigned value during reduction and to
// write an assignment or a conflict during unification. internal/check's
// registry implements this directly; the reducer never needs the rest of
// a hole's bookkeeping (expected type, first-sighting context).
type HoleStore interface {
	// Lookup returns the hole's current value (nil if unset or
	// conflicted) and the depth at which it was first registered.
	Lookup(name string) (value *term.Term, bindingDepth uint32, ok bool)
	// Assign records value as the hole's solution.
	Assign(name string, value *term.Term)
	// Conflict marks the hole unresolvable; it keeps its ok=true
	// registration but Lookup returns a nil value from then on.
	Conflict(name string)
}

package check

import "kindkernel/internal/term"

// holeInfo is the full bookkeeping record for one metavariable: the
// reducer only ever needs its value and binding depth (see
// reduce.HoleStore), but reporting unresolved holes after a top-level
// check needs the expected type and context at first sighting too.
type holeInfo struct {
	name       string
	expected   *term.Term
	ctx        Ctx
	depth      uint32
	value      *term.Term
	conflicted bool
}

// HoleRegistry is a checking session's metavariable store. It implements
// reduce.HoleStore structurally, so the reducer and equality engine can
// read and write hole assignments without internal/reduce importing
// internal/check.
type HoleRegistry struct {
	holes map[string]*holeInfo
	order []string
}

func NewHoleRegistry() *HoleRegistry {
	return &HoleRegistry{holes: make(map[string]*holeInfo)}
}

// register records a hole's first sighting; later sightings of the same
// name are no-ops, since a hole name identifies one metavariable for the
// life of the session.
func (r *HoleRegistry) register(name string, expected *term.Term, ctx Ctx, depth uint32) {
	if _, ok := r.holes[name]; ok {
		return
	}
	r.holes[name] = &holeInfo{name: name, expected: expected, ctx: ctx, depth: depth}
	r.order = append(r.order, name)
}

func (r *HoleRegistry) Lookup(name string) (value *term.Term, bindingDepth uint32, ok bool) {
	h, ok := r.holes[name]
	if !ok {
		return nil, 0, false
	}
	if h.conflicted {
		return nil, h.depth, true
	}
	return h.value, h.depth, true
}

func (r *HoleRegistry) Assign(name string, value *term.Term) {
	h, ok := r.holes[name]
	if !ok {
		h = &holeInfo{name: name}
		r.holes[name] = h
		r.order = append(r.order, name)
	}
	h.value = value
}

func (r *HoleRegistry) Conflict(name string) {
	if h, ok := r.holes[name]; ok {
		h.conflicted = true
	}
}

// anonymous names (leading underscore) are autogenerated; they are
// never reported when left unresolved.
func anonymous(name string) bool {
	return len(name) > 0 && name[0] == '_'
}

// Unresolved returns every named, non-anonymous hole that was never
// assigned (or was assigned and then conflicted), in registration order.
func (r *HoleRegistry) Unresolved() []*holeInfo {
	var out []*holeInfo
	for _, name := range r.order {
		h := r.holes[name]
		if anonymous(h.name) {
			continue
		}
		if h.value == nil || h.conflicted {
			out = append(out, h)
		}
	}
	return out
}

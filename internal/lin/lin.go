// Package lin implements the kernel's linearity and recursion advisories:
// Uses counts a bound variable's occurrences, IsAffine checks that every
// lambda uses its own bound variable at most once, and IsTerminating
// conservatively rejects a reference that recurs within its own
// expansion. None of these are invoked by the type checker; a front-end
// calls them to warn or reject on top of a term that already checks.
package lin

import "kindkernel/internal/term"

// Uses counts free occurrences of Var(depth) in t, descending under
// binders with depth+1. An erased argument of an App contributes zero,
// since it carries no runtime content to count.
func Uses(t *term.Term, depth uint32) int {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case term.Var:
		if t.Index == depth {
			return 1
		}
		return 0
	case term.Typ, term.Num, term.Val, term.Hol, term.Ref:
		return 0
	case term.All:
		return Uses(t.Bind, depth) + Uses(t.Body, depth+1)
	case term.Lam:
		return Uses(t.Bind, depth) + Uses(t.Body, depth+1)
	case term.App:
		n := Uses(t.Func, depth)
		if !t.Erased {
			n += Uses(t.Argm, depth)
		}
		return n
	case term.Slf:
		return Uses(t.Body, depth+1)
	case term.New:
		return Uses(t.Type, depth) + Uses(t.Expr, depth)
	case term.Use:
		return Uses(t.Expr, depth)
	case term.Op1, term.Op2:
		return Uses(t.Num0, depth) + Uses(t.Num1, depth)
	case term.Ite:
		return Uses(t.Cond, depth) + Uses(t.Ift, depth) + Uses(t.Iff, depth)
	case term.Ann:
		return Uses(t.Type, depth) + Uses(t.Expr, depth)
	case term.Log:
		return Uses(t.Msge, depth) + Uses(t.Expr, depth)
	}
	return 0
}

// IsAffine reports whether every Lam reachable from t (recursing into
// non-erased sub-terms, and following a Ref's definition at most once)
// uses its own bound variable no more than once.
func IsAffine(t *term.Term, defs map[string]*term.Term) bool {
	return isAffine(t, defs, map[string]bool{})
}

func isAffine(t *term.Term, defs map[string]*term.Term, seen map[string]bool) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case term.Var, term.Typ, term.Num, term.Val, term.Hol:
		return true
	case term.Lam:
		if Uses(t.Body, 0) > 1 {
			return false
		}
		return isAffine(t.Bind, defs, seen) && isAffine(t.Body, defs, seen)
	case term.All:
		return isAffine(t.Bind, defs, seen) && isAffine(t.Body, defs, seen)
	case term.App:
		if t.Erased {
			return isAffine(t.Func, defs, seen)
		}
		return isAffine(t.Func, defs, seen) && isAffine(t.Argm, defs, seen)
	case term.Slf:
		return isAffine(t.Body, defs, seen)
	case term.New:
		return isAffine(t.Type, defs, seen) && isAffine(t.Expr, defs, seen)
	case term.Use:
		return isAffine(t.Expr, defs, seen)
	case term.Op1, term.Op2:
		return isAffine(t.Num0, defs, seen) && isAffine(t.Num1, defs, seen)
	case term.Ite:
		return isAffine(t.Cond, defs, seen) && isAffine(t.Ift, defs, seen) && isAffine(t.Iff, defs, seen)
	case term.Ann:
		return isAffine(t.Type, defs, seen) && isAffine(t.Expr, defs, seen)
	case term.Log:
		return isAffine(t.Msge, defs, seen) && isAffine(t.Expr, defs, seen)
	case term.Ref:
		if seen[t.RefName] {
			return true
		}
		body, ok := defs[t.RefName]
		if !ok {
			return true
		}
		nextSeen := make(map[string]bool, len(seen)+1)
		for k := range seen {
			nextSeen[k] = true
		}
		nextSeen[t.RefName] = true
		return isAffine(body, defs, nextSeen)
	}
	return true
}

// IsTerminating is a conservative syntactic check: a term with no Ref is
// always considered terminating; one that recurs into its own
// transitive expansion (directly or through a chain of other
// definitions) is rejected. It proves nothing about general recursion
// through host-level computation, only about the reference graph.
func IsTerminating(t *term.Term, defs map[string]*term.Term) bool {
	return isTerminating(t, defs, map[string]bool{})
}

func isTerminating(t *term.Term, defs map[string]*term.Term, onStack map[string]bool) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case term.Var, term.Typ, term.Num, term.Val, term.Hol:
		return true
	case term.Lam:
		return isTerminating(t.Bind, defs, onStack) && isTerminating(t.Body, defs, onStack)
	case term.All:
		return isTerminating(t.Bind, defs, onStack) && isTerminating(t.Body, defs, onStack)
	case term.App:
		return isTerminating(t.Func, defs, onStack) && isTerminating(t.Argm, defs, onStack)
	case term.Slf:
		return isTerminating(t.Body, defs, onStack)
	case term.New:
		return isTerminating(t.Type, defs, onStack) && isTerminating(t.Expr, defs, onStack)
	case term.Use:
		return isTerminating(t.Expr, defs, onStack)
	case term.Op1, term.Op2:
		return isTerminating(t.Num0, defs, onStack) && isTerminating(t.Num1, defs, onStack)
	case term.Ite:
		return isTerminating(t.Cond, defs, onStack) && isTerminating(t.Ift, defs, onStack) && isTerminating(t.Iff, defs, onStack)
	case term.Ann:
		return isTerminating(t.Type, defs, onStack) && isTerminating(t.Expr, defs, onStack)
	case term.Log:
		return isTerminating(t.Msge, defs, onStack) && isTerminating(t.Expr, defs, onStack)
	case term.Ref:
		if onStack[t.RefName] {
			return false
		}
		body, ok := defs[t.RefName]
		if !ok {
			return true
		}
		nextStack := make(map[string]bool, len(onStack)+1)
		for k := range onStack {
			nextStack[k] = true
		}
		nextStack[t.RefName] = true
		return isTerminating(body, defs, nextStack)
	}
	return true
}

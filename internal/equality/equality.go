package equality

import (
	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

// Equal reports whether a and b are definitionally equal. Both sides are
// erased once at the entry point so proof-irrelevant content never
// affects the comparison; the recursive obligation tree below is where
// reduction, alpha-equivalence, and hole assignment all happen.
func Equal(sess *reduce.Session, a, b *term.Term) (bool, error) {
	return equal(sess, reduce.Erase(a), reduce.Erase(b), 0)
}

// equal evaluates one equality obligation at depth (the number of
// binders currently in scope around a and b). It tries, in order: the
// first hash-pair shortcut, hole assignment for a side that is itself a
// hole (before reduction substitutes an assigned value for it), the
// other two hash-pair shortcuts, the same-Ref shortcut, hole assignment
// for a side that reduces to a hole, the App hint branch, and finally
// structural comparison of the δ-reduced heads.
func equal(sess *reduce.Session, a, b *term.Term, depth uint32) (bool, error) {
	if term.Hash(a) == term.Hash(b) {
		return true, nil
	}

	if a.Kind == term.Hol {
		return assignHole(sess, a, b, depth)
	}
	if b.Kind == term.Hol {
		return assignHole(sess, b, a, depth)
	}

	ax, err := reduce.WeakHeadAt(sess, a, depth, reduce.NoDelta())
	if err != nil {
		return false, err
	}
	bx, err := reduce.WeakHeadAt(sess, b, depth, reduce.NoDelta())
	if err != nil {
		return false, err
	}
	if term.Hash(ax) == term.Hash(bx) {
		return true, nil
	}

	ay, err := reduce.WeakHeadAt(sess, a, depth, reduce.Full())
	if err != nil {
		return false, err
	}
	by, err := reduce.WeakHeadAt(sess, b, depth, reduce.Full())
	if err != nil {
		return false, err
	}
	if term.Hash(ay) == term.Hash(by) {
		return true, nil
	}

	if ax.Kind == term.Ref && bx.Kind == term.Ref && ax.RefName == bx.RefName {
		return true, nil
	}

	if ax.Kind == term.Hol {
		return assignHole(sess, ax, b, depth)
	}
	if bx.Kind == term.Hol {
		return assignHole(sess, bx, a, depth)
	}

	if ax.Kind == term.App && bx.Kind == term.App {
		funcEq, err := equal(sess, ax.Func, bx.Func, depth)
		if err != nil {
			return false, err
		}
		if funcEq {
			argmEq, err := equal(sess, ax.Argm, bx.Argm, depth)
			if err != nil {
				return false, err
			}
			if argmEq {
				return true, nil
			}
		}
	}

	return structural(sess, ay, by, depth)
}

// structural compares two already δ-reduced weak-head forms constructor
// by constructor, recursing into children through equal so that each
// child gets its own fresh round of reduction and hash shortcuts.
// Op1's Num1 is, by construction, always a literal Val, so for Op1
// recursing here already compares the two sides' literals directly
// rather than vacuously comparing a term to itself; Op2's Num1 may be any
// term and is compared the same way.
func structural(sess *reduce.Session, a, b *term.Term, depth uint32) (bool, error) {
	if a.Kind != b.Kind {
		return false, nil
	}
	switch a.Kind {
	case term.Var:
		return a.Index == b.Index, nil
	case term.Typ, term.Num:
		return true, nil
	case term.Val:
		return a.Numb == b.Numb, nil
	case term.All:
		return binder(sess, a, b, depth)
	case term.Lam:
		if a.Erased != b.Erased {
			return false, nil
		}
		return binder(sess, a, b, depth)
	case term.App:
		if a.Erased != b.Erased {
			return false, nil
		}
		return both(sess, a.Func, b.Func, a.Argm, b.Argm, depth)
	case term.Slf:
		return equal(sess, a.Body, b.Body, depth+1)
	case term.New:
		return both(sess, a.Type, b.Type, a.Expr, b.Expr, depth)
	case term.Use:
		return equal(sess, a.Expr, b.Expr, depth)
	case term.Op1, term.Op2:
		if a.OpCode != b.OpCode {
			return false, nil
		}
		return both(sess, a.Num0, b.Num0, a.Num1, b.Num1, depth)
	case term.Ite:
		cond, err := equal(sess, a.Cond, b.Cond, depth)
		if err != nil || !cond {
			return cond, err
		}
		return both(sess, a.Ift, b.Ift, a.Iff, b.Iff, depth)
	case term.Ann:
		return both(sess, a.Type, b.Type, a.Expr, b.Expr, depth)
	case term.Log:
		return both(sess, a.Msge, b.Msge, a.Expr, b.Expr, depth)
	case term.Hol:
		return a.HoleName == b.HoleName, nil
	case term.Ref:
		return a.RefName == b.RefName && a.Erased == b.Erased, nil
	}
	return false, nil
}

func binder(sess *reduce.Session, a, b *term.Term, depth uint32) (bool, error) {
	bind, err := equal(sess, a.Bind, b.Bind, depth)
	if err != nil || !bind {
		return bind, err
	}
	return equal(sess, a.Body, b.Body, depth+1)
}

// both checks two independent equality obligations at the same depth,
// short-circuiting on the first false or error.
func both(sess *reduce.Session, a0, b0, a1, b1 *term.Term, depth uint32) (bool, error) {
	first, err := equal(sess, a0, b0, depth)
	if err != nil || !first {
		return first, err
	}
	return equal(sess, a1, b1, depth)
}

// assignHole resolves one side of an obligation that weak-head reduced
// to an unresolved hole. An already-assigned hole's value is shifted
// from its recorded binding depth to the comparison depth and compared
// against other; an unassigned hole is resolved by shifting other down
// to the hole's binding depth and recording it. A mismatch against an
// already-assigned value marks the hole conflicted (unresolvable from
// here on) but does not fail this obligation: the hole itself carries
// the error forward to whoever reports unresolved holes after checking.
func assignHole(sess *reduce.Session, hole *term.Term, other *term.Term, depth uint32) (bool, error) {
	if sess.Holes == nil {
		return false, nil
	}
	name := hole.HoleName
	value, bindingDepth, ok := sess.Holes.Lookup(name)
	if !ok {
		sess.Holes.Assign(name, other)
		return true, nil
	}
	if value == nil {
		shifted := term.Shift(other, int(bindingDepth)-int(depth), 0)
		sess.Holes.Assign(name, shifted)
		return true, nil
	}
	shiftedBack := term.Shift(value, int(depth)-int(bindingDepth), 0)
	same, err := equal(sess, shiftedBack, other, depth)
	if err != nil {
		return false, err
	}
	if !same {
		sess.Holes.Conflict(name)
	}
	return true, nil
}

package reduce

import "kindkernel/internal/term"

// WeakHead reduces t to weak-head form: the outermost redex chain is
// resolved (β/δ/ν/ι/Ann/Hol as gated by opts) but no binder's body is
// entered.
func WeakHead(sess *Session, t *term.Term, opts Options) (*term.Term, error) {
	return WeakHeadAt(sess, t, 0, opts)
}

// Normalize fully reduces t, recursing under every binder.
func Normalize(sess *Session, t *term.Term, opts Options) (*term.Term, error) {
	return NormalizeAt(sess, t, 0, opts)
}

// WeakHeadAt is WeakHead for a term that is not closed but lives under
// depth enclosing binders: each free variable is evaluated against a
// fresh neutral standing for that binder, so equality can weak-head
// reduce a sub-term pulled out from under a Lam/All/Slf without having
// the host closure that originally scoped it.
func WeakHeadAt(sess *Session, t *term.Term, depth uint32, opts Options) (*term.Term, error) {
	scoped := sess.withOpts(opts)
	v, err := unquote(scoped, t, IdentityEnv(depth))
	if err != nil {
		return nil, err
	}
	return quote(v, depth, true)
}

// NormalizeAt is Normalize for a term under depth enclosing binders; see
// WeakHeadAt.
func NormalizeAt(sess *Session, t *term.Term, depth uint32, opts Options) (*term.Term, error) {
	scoped := sess.withOpts(opts)
	v, err := unquote(scoped, t, IdentityEnv(depth))
	if err != nil {
		return nil, err
	}
	return quote(v, depth, false)
}

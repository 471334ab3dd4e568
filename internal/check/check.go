package check

import (
	"kindkernel/internal/diag"
	"kindkernel/internal/equality"
	"kindkernel/internal/reduce"
	"kindkernel/internal/source"
	"kindkernel/internal/term"
)

// Session holds everything one type-checking run shares: the global
// definition table, a cache of recovered types (memoized per reference),
// and the hole registry. Every piece of state here is an explicit field
// on Session rather than a package-level global, so independent sessions
// over different Defs never interfere.
type Session struct {
	Defs  map[string]*term.Term
	Types map[string]*term.Term
	Holes *HoleRegistry
	Sink  diag.Reporter

	rsess    *reduce.Session
	checking map[string]bool
}

// NewSession constructs a checking session over a shared definition
// table. sink receives reports for unresolved holes after a top-level
// check; either argument may be nil.
func NewSession(defs map[string]*term.Term, sink diag.Reporter, logs diag.LogSink) *Session {
	holes := NewHoleRegistry()
	return &Session{
		Defs:     defs,
		Types:    make(map[string]*term.Term),
		Holes:    holes,
		Sink:     sink,
		rsess:    reduce.NewSession(defs, holes, logs),
		checking: make(map[string]bool),
	}
}

// TypeCheck checks the top-level definition name against expected (nil
// for none), caches its recovered type, and reports any hole left
// unresolved by the check.
func (s *Session) TypeCheck(name string, expected *term.Term) (*term.Term, error) {
	body, ok := s.Defs[name]
	if !ok {
		return nil, errAt(diag.ChkUnknownReference, "reference to an unknown top-level definition: "+name, term.NewRef(name, false), nil)
	}
	typ, err := s.Infer(Ctx{}, body, expected, false)
	if err != nil {
		return nil, err
	}
	s.Types[name] = typ
	s.reportUnresolvedHoles()
	return typ, nil
}

// Infer is the bidirectional entry point: it infers t's type, and, if
// expected is non-nil, also checks the result against it by definitional
// equality. expected is weak-head-normalized before use so callers never
// have to do that themselves.
func (s *Session) Infer(ctx Ctx, t *term.Term, expected *term.Term, erased bool) (*term.Term, error) {
	if expected != nil {
		wh, err := reduce.WeakHeadAt(s.rsess, expected, ctx.depth(), reduce.Full())
		if err != nil {
			return nil, err
		}
		expected = wh
	}
	typ, err := s.infer(ctx, t, expected, erased)
	if err != nil {
		return nil, err
	}
	if expected == nil {
		return typ, nil
	}
	eq, err := equality.Equal(s.rsess, typ, expected)
	if err != nil {
		return nil, err
	}
	if !eq {
		return nil, errAt(diag.ChkTypeMismatch, "inferred type does not match the expected type", t, ctx)
	}
	return typ, nil
}

func (s *Session) infer(ctx Ctx, t *term.Term, expected *term.Term, erased bool) (*term.Term, error) {
	switch t.Kind {
	case term.Var:
		typ, varErased := ctx.lookup(t.Index)
		if varErased && !erased {
			return nil, errAt(diag.ChkErasedUseInRelevant, "erased variable used in a relevant position", t, ctx)
		}
		return typ, nil

	case term.Typ:
		return term.NewTyp(), nil

	case term.All:
		if _, err := s.Infer(ctx, t.Bind, term.NewTyp(), true); err != nil {
			return nil, err
		}
		bodyCtx := ctx.extend(t.Name, t.Bind, true)
		if _, err := s.Infer(bodyCtx, t.Body, term.NewTyp(), true); err != nil {
			return nil, err
		}
		return term.NewTyp(), nil

	case term.Lam:
		var dom *term.Term
		if expected != nil && expected.Kind == term.All {
			dom = expected.Bind
		} else if t.Bind != nil {
			if _, err := s.Infer(ctx, t.Bind, term.NewTyp(), true); err != nil {
				return nil, err
			}
			dom = t.Bind
		} else {
			return nil, errAt(diag.ChkLambdaNeedsAnnotation, "lambda requires an explicit domain annotation", t, ctx)
		}
		var bodyExpected *term.Term
		if expected != nil && expected.Kind == term.All {
			bodyExpected = expected.Body
		}
		bodyCtx := ctx.extend(t.Name, dom, t.Erased)
		bodyType, err := s.Infer(bodyCtx, t.Body, bodyExpected, erased)
		if err != nil {
			return nil, err
		}
		return term.NewAll(t.Name, dom, bodyType, t.Erased), nil

	case term.App:
		fnType, err := s.Infer(ctx, t.Func, nil, erased)
		if err != nil {
			return nil, err
		}
		fnType, err = reduce.WeakHeadAt(s.rsess, fnType, ctx.depth(), reduce.Full())
		if err != nil {
			return nil, err
		}
		if fnType.Kind != term.All {
			return nil, errAt(diag.ChkNonFunctionApplied, "application of a non-function value", t, ctx)
		}
		if fnType.Erased != t.Erased {
			return nil, errAt(diag.ChkErasureMismatch, "mismatched erasure on application", t, ctx)
		}
		if _, err := s.Infer(ctx, t.Argm, fnType.Bind, erased); err != nil {
			return nil, err
		}
		return term.Subst(fnType.Body, term.NewAnn(fnType.Bind, t.Argm, true), 0), nil

	case term.Slf:
		bodyCtx := ctx.extend(t.Name, t, false)
		if _, err := s.Infer(bodyCtx, t.Body, term.NewTyp(), true); err != nil {
			return nil, err
		}
		return term.NewTyp(), nil

	case term.New:
		if expected == nil || expected.Kind != term.Slf {
			return nil, errAt(diag.ChkNewOfNonSelf, "new applied to a non-self type", t, ctx)
		}
		selfSub := term.Subst(expected.Body, term.NewAnn(expected, t, true), 0)
		if _, err := s.Infer(ctx, t.Expr, selfSub, erased); err != nil {
			return nil, err
		}
		return expected, nil

	case term.Use:
		exprType, err := s.Infer(ctx, t.Expr, nil, erased)
		if err != nil {
			return nil, err
		}
		exprType, err = reduce.WeakHeadAt(s.rsess, exprType, ctx.depth(), reduce.Full())
		if err != nil {
			return nil, err
		}
		if exprType.Kind != term.Slf {
			return nil, errAt(diag.ChkUseOfNonSelf, "use applied to a non-self value", t, ctx)
		}
		return term.Subst(exprType.Body, t.Expr, 0), nil

	case term.Num:
		return term.NewTyp(), nil

	case term.Val:
		return term.NewNum(), nil

	case term.Op1, term.Op2:
		if _, err := s.Infer(ctx, t.Num0, term.NewNum(), erased); err != nil {
			return nil, err
		}
		if _, err := s.Infer(ctx, t.Num1, term.NewNum(), erased); err != nil {
			return nil, err
		}
		return term.NewNum(), nil

	case term.Ite:
		if _, err := s.Infer(ctx, t.Cond, term.NewNum(), erased); err != nil {
			return nil, err
		}
		thenType, err := s.Infer(ctx, t.Ift, expected, erased)
		if err != nil {
			return nil, err
		}
		if _, err := s.Infer(ctx, t.Iff, thenType, erased); err != nil {
			return nil, err
		}
		if expected != nil {
			return expected, nil
		}
		return thenType, nil

	case term.Ann:
		if t.Done {
			return t.Type, nil
		}
		if _, err := s.Infer(ctx, t.Type, term.NewTyp(), true); err != nil {
			return nil, err
		}
		if _, err := s.Infer(ctx, t.Expr, t.Type, erased); err != nil {
			t.MarkDone(false)
			return nil, err
		}
		t.MarkDone(true)
		return t.Type, nil

	case term.Log:
		exprType, err := s.Infer(ctx, t.Expr, expected, erased)
		if err != nil {
			return nil, err
		}
		if t.Msge != nil {
			if _, err := s.Infer(ctx, t.Msge, nil, true); err != nil {
				return nil, err
			}
		}
		return exprType, nil

	case term.Hol:
		if expected != nil {
			s.Holes.register(t.HoleName, expected, ctx, ctx.depth())
			return expected, nil
		}
		fresh := term.NewHol(t.HoleName + "_type")
		s.Holes.register(t.HoleName, fresh, ctx, ctx.depth())
		return fresh, nil

	case term.Ref:
		return s.inferRef(t)
	}
	return nil, errAt(diag.ChkUnboundVariable, "unhandled term constructor", t, ctx)
}

// inferRef implements per-reference memoized type inference: a
// definition is checked at most once, in the empty context, and then
// rewritten in place to Ann(type, body, done=true) so later references
// read the cached type without re-checking.
func (s *Session) inferRef(t *term.Term) (*term.Term, error) {
	if cached, ok := s.Types[t.RefName]; ok {
		return cached, nil
	}
	if s.checking[t.RefName] {
		return nil, errAt(diag.ChkRecursiveReference, "reference recurses through itself while being checked: "+t.RefName, t, nil)
	}
	body, ok := s.Defs[t.RefName]
	if !ok {
		return nil, errAt(diag.ChkUnknownReference, "reference to an unknown top-level definition: "+t.RefName, t, nil)
	}
	s.checking[t.RefName] = true
	typ, err := s.Infer(Ctx{}, body, nil, false)
	delete(s.checking, t.RefName)
	if err != nil {
		return nil, err
	}

	resolvedType := s.resolveHoles(typ)
	resolvedBody := s.resolveHoles(body)
	s.Types[t.RefName] = resolvedType
	s.Defs[t.RefName] = term.NewAnn(resolvedType, resolvedBody, true)
	return resolvedType, nil
}

// resolveHoles substitutes every hole in t that has since been assigned,
// leaving everything else untouched.
func (s *Session) resolveHoles(t *term.Term) *term.Term {
	out, err := reduce.NormalizeAt(s.rsess, t, 0, reduce.Options{Hole: true})
	if err != nil {
		return t
	}
	return out
}

func (s *Session) reportUnresolvedHoles() {
	if s.Sink == nil {
		return
	}
	for _, h := range s.Holes.Unresolved() {
		code := diag.HolUnsolved
		msg := "hole left unsolved: " + h.name
		if h.conflicted {
			code = diag.HolConflict
			msg = "hole has conflicting assignments: " + h.name
		}
		b := diag.ReportWarning(s.Sink, code, source.Span{}, msg)
		if h.expected != nil {
			b = b.WithTerm(term.Render(h.expected), "")
		}
		b.Emit()
	}
}

package term

// Shift increases every Var with index >= cutoff by inc, recursing under
// binders with cutoff+1. It never mutates t.
func Shift(t *Term, inc int, cutoff uint32) *Term {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case Var:
		if t.Index >= cutoff {
			return NewVar(shiftIndex(t.Index, inc)).WithSpan(t.Span)
		}
		return t
	case Typ, Num:
		return t
	case All:
		return (&Term{
			Kind: All, Name: t.Name, Erased: t.Erased, Span: t.Span,
			Bind: Shift(t.Bind, inc, cutoff),
			Body: Shift(t.Body, inc, cutoff+1),
		})
	case Lam:
		return &Term{
			Kind: Lam, Name: t.Name, Erased: t.Erased, Span: t.Span,
			Bind: Shift(t.Bind, inc, cutoff),
			Body: Shift(t.Body, inc, cutoff+1),
		}
	case App:
		return &Term{
			Kind: App, Erased: t.Erased, Span: t.Span,
			Func: Shift(t.Func, inc, cutoff),
			Argm: Shift(t.Argm, inc, cutoff),
		}
	case Slf:
		return &Term{Kind: Slf, Name: t.Name, Span: t.Span, Body: Shift(t.Body, inc, cutoff+1)}
	case New:
		return &Term{Kind: New, Span: t.Span, Type: Shift(t.Type, inc, cutoff), Expr: Shift(t.Expr, inc, cutoff)}
	case Use:
		return &Term{Kind: Use, Span: t.Span, Expr: Shift(t.Expr, inc, cutoff)}
	case Val:
		return t
	case Op1:
		return &Term{Kind: Op1, OpCode: t.OpCode, Span: t.Span, Num0: Shift(t.Num0, inc, cutoff), Num1: Shift(t.Num1, inc, cutoff)}
	case Op2:
		return &Term{Kind: Op2, OpCode: t.OpCode, Span: t.Span, Num0: Shift(t.Num0, inc, cutoff), Num1: Shift(t.Num1, inc, cutoff)}
	case Ite:
		return &Term{
			Kind: Ite, Span: t.Span,
			Cond: Shift(t.Cond, inc, cutoff),
			Ift:  Shift(t.Ift, inc, cutoff),
			Iff:  Shift(t.Iff, inc, cutoff),
		}
	case Ann:
		return &Term{Kind: Ann, Done: t.Done, Span: t.Span, Type: Shift(t.Type, inc, cutoff), Expr: Shift(t.Expr, inc, cutoff)}
	case Log:
		return &Term{Kind: Log, Span: t.Span, Msge: Shift(t.Msge, inc, cutoff), Expr: Shift(t.Expr, inc, cutoff)}
	case Hol:
		return t
	case Ref:
		return t
	}
	return t
}

func shiftIndex(i uint32, inc int) uint32 {
	if inc >= 0 {
		return i + uint32(inc)
	}
	dec := uint32(-inc)
	if dec > i {
		return 0
	}
	return i - dec
}

// Subst replaces Var d by v (shifted for the depth under which each
// occurrence lives) and decrements indices strictly greater than d. This
// is the single-substitution building block; SubstMany composes several.
func Subst(t *Term, v *Term, d uint32) *Term {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case Var:
		switch {
		case t.Index == d:
			return Shift(v, int(d), 0)
		case t.Index > d:
			return NewVar(t.Index - 1).WithSpan(t.Span)
		default:
			return t
		}
	case Typ, Num, Val, Hol, Ref:
		return t
	case All:
		return &Term{
			Kind: All, Name: t.Name, Erased: t.Erased, Span: t.Span,
			Bind: Subst(t.Bind, v, d),
			Body: Subst(t.Body, v, d+1),
		}
	case Lam:
		return &Term{
			Kind: Lam, Name: t.Name, Erased: t.Erased, Span: t.Span,
			Bind: Subst(t.Bind, v, d),
			Body: Subst(t.Body, v, d+1),
		}
	case App:
		return &Term{
			Kind: App, Erased: t.Erased, Span: t.Span,
			Func: Subst(t.Func, v, d),
			Argm: Subst(t.Argm, v, d),
		}
	case Slf:
		return &Term{Kind: Slf, Name: t.Name, Span: t.Span, Body: Subst(t.Body, v, d+1)}
	case New:
		return &Term{Kind: New, Span: t.Span, Type: Subst(t.Type, v, d), Expr: Subst(t.Expr, v, d)}
	case Use:
		return &Term{Kind: Use, Span: t.Span, Expr: Subst(t.Expr, v, d)}
	case Op1:
		return &Term{Kind: Op1, OpCode: t.OpCode, Span: t.Span, Num0: Subst(t.Num0, v, d), Num1: Subst(t.Num1, v, d)}
	case Op2:
		return &Term{Kind: Op2, OpCode: t.OpCode, Span: t.Span, Num0: Subst(t.Num0, v, d), Num1: Subst(t.Num1, v, d)}
	case Ite:
		return &Term{
			Kind: Ite, Span: t.Span,
			Cond: Subst(t.Cond, v, d),
			Ift:  Subst(t.Ift, v, d),
			Iff:  Subst(t.Iff, v, d),
		}
	case Ann:
		return &Term{Kind: Ann, Done: t.Done, Span: t.Span, Type: Subst(t.Type, v, d), Expr: Subst(t.Expr, v, d)}
	case Log:
		return &Term{Kind: Log, Span: t.Span, Msge: Subst(t.Msge, v, d), Expr: Subst(t.Expr, v, d)}
	}
	return t
}

// SubstMany applies substitutions right-to-left with rolling shifts, so
// that independent bindings compose correctly: vs[len(vs)-1] fills the
// innermost binder (Var d), vs[0] the outermost.
func SubstMany(t *Term, vs []*Term, d uint32) *Term {
	result := t
	for i := len(vs) - 1; i >= 0; i-- {
		result = Subst(result, vs[i], d+uint32(i))
	}
	return result
}

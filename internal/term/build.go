package term

import "kindkernel/internal/source"

// Constructors build terms with a zero Span; callers that track source
// locations should set Span directly afterward (the reducer and runtimes
// construct plenty of terms with no corresponding source position).

func NewVar(index uint32) *Term {
	return &Term{Kind: Var, Index: index}
}

func NewTyp() *Term {
	return &Term{Kind: Typ}
}

func NewAll(name string, bind, body *Term, erased bool) *Term {
	return &Term{Kind: All, Name: name, Bind: bind, Body: body, Erased: erased}
}

func NewLam(name string, bind, body *Term, erased bool) *Term {
	return &Term{Kind: Lam, Name: name, Bind: bind, Body: body, Erased: erased}
}

func NewApp(fn, arg *Term, erased bool) *Term {
	return &Term{Kind: App, Func: fn, Argm: arg, Erased: erased}
}

func NewSlf(name string, selfType *Term) *Term {
	return &Term{Kind: Slf, Name: name, Body: selfType}
}

func NewNew(selfType, expr *Term) *Term {
	return &Term{Kind: New, Type: selfType, Expr: expr}
}

func NewUse(expr *Term) *Term {
	return &Term{Kind: Use, Expr: expr}
}

func NewNum() *Term {
	return &Term{Kind: Num}
}

func NewVal(numb uint32) *Term {
	return &Term{Kind: Val, Numb: numb}
}

func NewOp1(op Op, num0, num1 *Term) *Term {
	return &Term{Kind: Op1, OpCode: op, Num0: num0, Num1: num1}
}

func NewOp2(op Op, num0, num1 *Term) *Term {
	return &Term{Kind: Op2, OpCode: op, Num0: num0, Num1: num1}
}

func NewIte(cond, ift, iff *Term) *Term {
	return &Term{Kind: Ite, Cond: cond, Ift: ift, Iff: iff}
}

func NewAnn(typ, expr *Term, done bool) *Term {
	return &Term{Kind: Ann, Type: typ, Expr: expr, Done: done}
}

func NewLog(msge, expr *Term) *Term {
	return &Term{Kind: Log, Msge: msge, Expr: expr}
}

func NewHol(name string) *Term {
	return &Term{Kind: Hol, HoleName: name}
}

func NewRef(name string, erased bool) *Term {
	return &Term{Kind: Ref, RefName: name, Erased: erased}
}

// WithSpan sets the source location and returns t, for chaining at
// construction sites that do track positions.
func (t *Term) WithSpan(sp source.Span) *Term {
	if t == nil {
		return nil
	}
	t.Span = sp
	return t
}

// MarkDone flips Ann's memoization flag. It is the one place a
// constructed term is mutated rather than rebuilt.
func (t *Term) MarkDone(done bool) {
	if t == nil || t.Kind != Ann {
		return
	}
	t.Done = done
	t.invalidate()
}

package reduce

import "kindkernel/internal/term"

// unquote evaluates a de-Bruijn term into a HOAS Value under env, applying
// every reduction rule gated on by sess.Opts. It always evaluates
// bottom-up to a head form; the weak/full distinction lives in quote,
// which decides whether to force a binder's body.
func unquote(sess *Session, t *term.Term, env Env) (*Value, error) {
	if t == nil {
		return nil, nil
	}
	switch t.Kind {
	case term.Var:
		return env.lookup(t.Index), nil

	case term.Typ:
		return &Value{Kind: term.Typ}, nil

	case term.Num:
		return &Value{Kind: term.Num}, nil

	case term.Val:
		return &Value{Kind: term.Val, Numb: t.Numb}, nil

	case term.All:
		dom, err := unquote(sess, t.Bind, env)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: term.All, Name: t.Name, Dom: dom, Erased: t.Erased,
			Clo: &Closure{Env: env, Body: t.Body, sess: sess}}, nil

	case term.Lam:
		var dom *Value
		if t.Bind != nil {
			v, err := unquote(sess, t.Bind, env)
			if err != nil {
				return nil, err
			}
			dom = v
		}
		return &Value{Kind: term.Lam, Name: t.Name, Dom: dom, Erased: t.Erased,
			Clo: &Closure{Env: env, Body: t.Body, sess: sess}}, nil

	case term.App:
		fn, err := unquote(sess, t.Func, env)
		if err != nil {
			return nil, err
		}
		arg, err := unquote(sess, t.Argm, env)
		if err != nil {
			return nil, err
		}
		return applyValue(sess, fn, arg, t.Erased)

	case term.Slf:
		return &Value{Kind: term.Slf, Name: t.Name,
			Clo: &Closure{Env: env, Body: t.Body, sess: sess}}, nil

	case term.New:
		typ, err := unquote(sess, t.Type, env)
		if err != nil {
			return nil, err
		}
		expr, err := unquote(sess, t.Expr, env)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: term.New, Type: typ, Expr: expr}, nil

	case term.Use:
		expr, err := unquote(sess, t.Expr, env)
		if err != nil {
			return nil, err
		}
		if sess.Opts.Iota && expr.Kind == term.New {
			return expr.Expr, nil
		}
		return &Value{Kind: term.Use, Expr: expr}, nil

	case term.Op1:
		n0, err := unquote(sess, t.Num0, env)
		if err != nil {
			return nil, err
		}
		n1, err := unquote(sess, t.Num1, env)
		if err != nil {
			return nil, err
		}
		return combineOp1(sess, t.OpCode, n0, n1)

	case term.Op2:
		n1, err := unquote(sess, t.Num1, env)
		if err != nil {
			return nil, err
		}
		n0, err := unquote(sess, t.Num0, env)
		if err != nil {
			return nil, err
		}
		return combineOp2(sess, t.OpCode, n0, n1)

	case term.Ite:
		cond, err := unquote(sess, t.Cond, env)
		if err != nil {
			return nil, err
		}
		if sess.Opts.Iota && cond.Kind == term.Val {
			if cond.Numb != 0 {
				return unquote(sess, t.Ift, env)
			}
			return unquote(sess, t.Iff, env)
		}
		ift, err := unquote(sess, t.Ift, env)
		if err != nil {
			return nil, err
		}
		iff, err := unquote(sess, t.Iff, env)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: term.Ite, Cond: cond, Ift: ift, Iff: iff}, nil

	case term.Ann:
		return unquote(sess, t.Expr, env)

	case term.Log:
		msge, err := unquote(sess, t.Msge, env)
		if err != nil {
			return nil, err
		}
		rendered, err := quote(msge, uint32(len(env)), false)
		if err != nil {
			return nil, err
		}
		sess.log(uint32(len(env)), term.Render(rendered), "")
		return unquote(sess, t.Expr, env)

	case term.Hol:
		if sess.Opts.Hole && sess.Holes != nil {
			val, bindingDepth, ok := sess.Holes.Lookup(t.HoleName)
			if ok && val != nil {
				shifted := term.Shift(val, int(uint32(len(env)))-int(bindingDepth), 0)
				return unquote(sess, shifted, env)
			}
		}
		return &Value{Kind: term.Hol, HoleName: t.HoleName}, nil

	case term.Ref:
		if sess.Opts.Delta {
			if body, ok := sess.erasedDef(t.RefName, t.Erased); ok {
				return unquote(sess, body, Env{})
			}
		}
		return &Value{Kind: term.Ref, RefName: t.RefName, Erased: t.Erased}, nil
	}
	return nil, errUnknownOp(t.Kind.String())
}

func applyValue(sess *Session, fn, arg *Value, erased bool) (*Value, error) {
	if sess.Opts.Beta && fn.Kind == term.Lam {
		return fn.Clo.Apply(arg)
	}
	return &Value{Kind: term.App, Func: fn, Argm: arg, Erased: erased}, nil
}

// combineOp1 combines the operands of an already-partially-applied
// binary op: Num1 is, by construction, always a literal (see
// internal/equality's structural comparison), so the only question is
// whether Num0 has resolved far enough to compute the result.
func combineOp1(sess *Session, op term.Op, n0, n1 *Value) (*Value, error) {
	if sess.Opts.Nu && n0.Kind == term.Val && n1.Kind == term.Val {
		res, ok := ApplyOp(op, n0.Numb, n1.Numb)
		if !ok {
			return nil, errDivByZero()
		}
		return &Value{Kind: term.Val, Numb: res}, nil
	}
	return &Value{Kind: term.Op1, OpCode: op, Num0: n0, Num1: n1}, nil
}

// combineOp2 combines the operands of a binary op neither of whose
// sides is yet known to be a literal. Once the right operand (n1)
// resolves to a literal, the op demotes to Op1 so the rest of the
// kernel's Op1/Num1-is-a-literal invariant keeps holding; until then it
// stays Op2.
func combineOp2(sess *Session, op term.Op, n0, n1 *Value) (*Value, error) {
	if sess.Opts.Nu && n0.Kind == term.Val && n1.Kind == term.Val {
		res, ok := ApplyOp(op, n0.Numb, n1.Numb)
		if !ok {
			return nil, errDivByZero()
		}
		return &Value{Kind: term.Val, Numb: res}, nil
	}
	if n1.Kind == term.Val {
		return &Value{Kind: term.Op1, OpCode: op, Num0: n0, Num1: n1}, nil
	}
	return &Value{Kind: term.Op2, OpCode: op, Num0: n0, Num1: n1}, nil
}

// quote converts a Value back into a de-Bruijn term.Term at the given
// depth (number of enclosing binders in the output). When weak is true,
// binder bodies (All/Lam/Slf) are reconstructed by substitution instead
// of being forced further, so reduction never descends under a binder;
// when false, every binder body is opened with a fresh variable and
// fully quoted, recursing with weak=false throughout.
func quote(v *Value, depth uint32, weak bool) (*term.Term, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case term.Var:
		return term.NewVar(depth - 1 - v.VarLevel), nil
	case term.Typ:
		return term.NewTyp(), nil
	case term.Num:
		return term.NewNum(), nil
	case term.Val:
		return term.NewVal(v.Numb), nil
	case term.All:
		dom, err := quote(v.Dom, depth, weak)
		if err != nil {
			return nil, err
		}
		body, err := quoteBinderBody(v.Clo, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewAll(v.Name, dom, body, v.Erased), nil
	case term.Lam:
		dom, err := quote(v.Dom, depth, weak)
		if err != nil {
			return nil, err
		}
		body, err := quoteBinderBody(v.Clo, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewLam(v.Name, dom, body, v.Erased), nil
	case term.App:
		fn, err := quote(v.Func, depth, weak)
		if err != nil {
			return nil, err
		}
		arg, err := quote(v.Argm, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewApp(fn, arg, v.Erased), nil
	case term.Slf:
		body, err := quoteBinderBody(v.Clo, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewSlf(v.Name, body), nil
	case term.New:
		typ, err := quote(v.Type, depth, weak)
		if err != nil {
			return nil, err
		}
		expr, err := quote(v.Expr, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewNew(typ, expr), nil
	case term.Use:
		expr, err := quote(v.Expr, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewUse(expr), nil
	case term.Op1:
		n0, err := quote(v.Num0, depth, weak)
		if err != nil {
			return nil, err
		}
		n1, err := quote(v.Num1, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewOp1(v.OpCode, n0, n1), nil
	case term.Op2:
		n0, err := quote(v.Num0, depth, weak)
		if err != nil {
			return nil, err
		}
		n1, err := quote(v.Num1, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewOp2(v.OpCode, n0, n1), nil
	case term.Ite:
		cond, err := quote(v.Cond, depth, weak)
		if err != nil {
			return nil, err
		}
		ift, err := quote(v.Ift, depth, weak)
		if err != nil {
			return nil, err
		}
		iff, err := quote(v.Iff, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewIte(cond, ift, iff), nil
	case term.Ann:
		typ, err := quote(v.Type, depth, weak)
		if err != nil {
			return nil, err
		}
		expr, err := quote(v.Expr, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewAnn(typ, expr, v.Done), nil
	case term.Log:
		msge, err := quote(v.Msge, depth, weak)
		if err != nil {
			return nil, err
		}
		expr, err := quote(v.Expr, depth, weak)
		if err != nil {
			return nil, err
		}
		return term.NewLog(msge, expr), nil
	case term.Hol:
		return term.NewHol(v.HoleName), nil
	case term.Ref:
		return term.NewRef(v.RefName, v.Erased), nil
	}
	return nil, nil
}

func quoteBinderBody(clo *Closure, depth uint32, weak bool) (*term.Term, error) {
	if weak {
		return quoteClosureShallow(clo, depth, weak)
	}
	body, err := clo.Apply(freshVar(depth))
	if err != nil {
		return nil, err
	}
	return quote(body, depth+1, false)
}

// quoteClosureShallow reconstructs a binder's body without opening it:
// the captured environment is quoted back to terms and substituted into
// Body directly, so no reduction happens under the binder itself.
func quoteClosureShallow(clo *Closure, depth uint32, weak bool) (*term.Term, error) {
	n := len(clo.Env)
	envTerms := make([]*term.Term, n)
	for i := range clo.Env {
		t, err := quote(clo.Env[n-1-i], depth, weak)
		if err != nil {
			return nil, err
		}
		envTerms[i] = t
	}
	return term.SubstMany(clo.Body, envTerms, 0), nil
}

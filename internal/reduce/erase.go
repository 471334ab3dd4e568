package reduce

import "kindkernel/internal/term"

// erasedSentinel fills an erased binder's variable occurrences once the
// binder itself is removed; it should never reach the runtimes, since
// the checker rejects uses of an erased variable in a relevant position.
const erasedSentinel = "<erased>"

// Erase removes computationally irrelevant content: an erased Lam is
// replaced by its body with the bound variable substituted by a
// sentinel hole; an erased App drops its argument; New, Ann, and Log
// collapse to their wrapped expression; Use drops to its expression;
// Slf and All remain, since they are part of the type-level language.
// Erase is idempotent.
func Erase(t *term.Term) *term.Term {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case term.Var, term.Typ, term.Num, term.Val, term.Hol, term.Ref:
		return t
	case term.All:
		return term.NewAll(t.Name, Erase(t.Bind), Erase(t.Body), t.Erased)
	case term.Lam:
		if t.Erased {
			return Erase(term.Subst(t.Body, term.NewHol(erasedSentinel), 0))
		}
		return term.NewLam(t.Name, Erase(t.Bind), Erase(t.Body), false)
	case term.App:
		if t.Erased {
			return Erase(t.Func)
		}
		return term.NewApp(Erase(t.Func), Erase(t.Argm), false)
	case term.Slf:
		return term.NewSlf(t.Name, Erase(t.Body))
	case term.New:
		return Erase(t.Expr)
	case term.Use:
		return Erase(t.Expr)
	case term.Op1:
		return term.NewOp1(t.OpCode, Erase(t.Num0), Erase(t.Num1))
	case term.Op2:
		return term.NewOp2(t.OpCode, Erase(t.Num0), Erase(t.Num1))
	case term.Ite:
		return term.NewIte(Erase(t.Cond), Erase(t.Ift), Erase(t.Iff))
	case term.Ann:
		return Erase(t.Expr)
	case term.Log:
		return Erase(t.Expr)
	}
	return t
}

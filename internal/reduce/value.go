package reduce

import "kindkernel/internal/term"

// Value is the reducer's HOAS semantic domain: binders are represented by
// host-level closures over an environment rather than by a de-Bruijn
// body, so that applying a closure is a direct Go function call instead
// of a substitution. quote turns a Value back into a term.Term; unquote
// builds one from a term.Term plus an environment.
type Value struct {
	Kind term.Kind

	VarLevel uint32 // Var: de-Bruijn *level* of a neutral (unopened) variable

	Name   string
	Dom    *Value // All/Lam: domain value (Lam's may be nil, no annotation)
	Clo    *Closure
	Erased bool

	Func *Value // App
	Argm *Value // App

	Type *Value // New: self-type
	Expr *Value // New/Use/Ann/Log

	Numb uint32 // Val

	OpCode term.Op
	Num0   *Value // Op1/Op2
	Num1   *Value // Op1/Op2

	Cond *Value // Ite
	Ift  *Value // Ite
	Iff  *Value // Ite

	Done bool // Ann

	Msge *Value // Log

	HoleName string // Hol
	RefName  string // Ref
}

// Env is a binder environment: Env[len(Env)-1] is Var 0 (the innermost
// binding), matching de-Bruijn indexing.
type Env []*Value

func (e Env) lookup(index uint32) *Value {
	return e[uint32(len(e))-1-index]
}

func (e Env) extend(v *Value) Env {
	out := make(Env, len(e)+1)
	copy(out, e)
	out[len(e)] = v
	return out
}

// Closure pairs a captured environment with an unevaluated de-Bruijn
// body; applying it extends the environment by one frame and unquotes.
type Closure struct {
	Env  Env
	Body *term.Term
	sess *Session
}

func (c *Closure) Apply(arg *Value) (*Value, error) {
	return unquote(c.sess, c.Body, c.Env.extend(arg))
}

func freshVar(level uint32) *Value {
	return &Value{Kind: term.Var, VarLevel: level}
}

// IdentityEnv builds the environment representing depth enclosing
// binders as fresh neutral variables: quoting it back at the same depth
// reconstructs each Var unchanged. Used to evaluate an open term (one
// pulled out from under a binder, e.g. by the equality engine) without a
// host closure to supply its free variables.
func IdentityEnv(depth uint32) Env {
	env := make(Env, depth)
	for i := range env {
		env[i] = freshVar(uint32(i))
	}
	return env
}

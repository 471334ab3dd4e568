package check

import "kindkernel/internal/term"

// frame is one entry of the typing context: the type assigned to a
// bound variable, recorded relative to the context as it stood at the
// point the frame was pushed.
type frame struct {
	Name   string
	Type   *term.Term
	Erased bool
}

// Ctx is a typing context, innermost binding last (mirrors reduce.Env's
// convention so that Var(i) always means "i binders back").
type Ctx []frame

func (c Ctx) extend(name string, typ *term.Term, erased bool) Ctx {
	out := make(Ctx, len(c)+1)
	copy(out, c)
	out[len(c)] = frame{Name: name, Type: typ, Erased: erased}
	return out
}

// lookup returns the type and erasure of Var(index). Frame types are
// recorded unshifted, valid in the context as of the push; looking them
// up from index binders further in requires shifting by index+1 to
// account for every binder introduced since.
func (c Ctx) lookup(index uint32) (typ *term.Term, erased bool) {
	f := c[uint32(len(c))-1-index]
	return term.Shift(f.Type, int(index)+1, 0), f.Erased
}

func (c Ctx) depth() uint32 {
	return uint32(len(c))
}

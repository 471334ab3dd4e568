package graphrt

import "kindkernel/internal/term"

// Decompile walks a live pointer back into a *term.Term, reconstructing
// de-Bruijn indices from the binder-address scope seen on the way down.
// It is the inverse of compile, used to observe a reduction result and
// to check the compile/decompile round trip.
func (s *Session) Decompile(p Ptr) *term.Term {
	return decompile(s, p, nil)
}

func decompile(s *Session, p Ptr, scope []uint32) *term.Term {
	switch p.Tag() {
	case TagVar:
		binder := s.live.get(p.Addr())
		for i := len(scope) - 1; i >= 0; i-- {
			if scope[i] == binder {
				return term.NewVar(uint32(len(scope) - 1 - i))
			}
		}
		return term.NewVar(0) // free variable outside any tracked scope; best effort
	case TagTyp:
		return term.NewTyp()
	case TagNum:
		return term.NewNum()
	case TagVal:
		return term.NewVal(s.live.get(p.Addr()))
	case TagHol:
		idx := s.live.get(p.Addr())
		return term.NewHol(s.m.names[idx])
	case TagRef:
		defID := s.live.get(p.Addr())
		return term.NewRef(s.m.defNames[defID], false)
	case TagLam:
		cellAddr := p.Addr()
		var bind *term.Term
		if bindPtr := Ptr(s.live.get(cellAddr + 1)); !bindPtr.IsNil() {
			bind = decompile(s, bindPtr, scope)
		}
		body := decompile(s, Ptr(s.live.get(cellAddr+2)), append(scope, cellAddr))
		return term.NewLam("x", bind, body, false)
	case TagApp:
		fn := decompile(s, Ptr(s.live.get(p.Addr())), scope)
		arg := decompile(s, Ptr(s.live.get(p.Addr()+1)), scope)
		return term.NewApp(fn, arg, false)
	case TagAll:
		erased := s.live.get(p.Addr()) != 0
		bind := decompile(s, Ptr(s.live.get(p.Addr()+1)), scope)
		body := decompile(s, Ptr(s.live.get(p.Addr()+2)), append(scope, p.Addr()))
		return term.NewAll("x", bind, body, erased)
	case TagSlf:
		body := decompile(s, Ptr(s.live.get(p.Addr())), append(scope, p.Addr()))
		return term.NewSlf("self", body)
	case TagOp1, TagOp2:
		op := term.Op(s.live.get(p.Addr()))
		n0 := decompile(s, Ptr(s.live.get(p.Addr()+1)), scope)
		n1 := decompile(s, Ptr(s.live.get(p.Addr()+2)), scope)
		if p.Tag() == TagOp1 {
			return term.NewOp1(op, n0, n1)
		}
		return term.NewOp2(op, n0, n1)
	case TagIte:
		cond := decompile(s, Ptr(s.live.get(p.Addr())), scope)
		ift := decompile(s, Ptr(s.live.get(p.Addr()+1)), scope)
		iff := decompile(s, Ptr(s.live.get(p.Addr()+2)), scope)
		return term.NewIte(cond, ift, iff)
	}
	return term.NewHol("<graphrt-decompile-error>")
}

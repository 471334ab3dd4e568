package graphrt

// NeedsCollection reports whether live memory has grown past 8 times its
// size as of the last collection (or past a small baseline before the
// first one), the threshold at which a caller should call Collect.
func (s *Session) NeedsCollection() bool {
	threshold := s.lastCollectedLen * 8
	if threshold == 0 {
		threshold = 256
	}
	return s.live.len() > threshold
}

// Collect retraces every node reachable from root into a freshly
// allocated memory, dropping everything else, and rewrites every
// variable cell's back-link to its binder's new address. It returns
// root's new location; any other pointer held against the old memory is
// invalidated by this call.
func (s *Session) Collect(root Ptr) Ptr {
	next := newMemory(s.live.len())
	forward := map[uint32]uint32{}
	newRoot := s.copyReachable(root, next, forward)
	s.live = next
	s.lastCollectedLen = next.len()
	return newRoot
}

func (s *Session) copyReachable(p Ptr, dst *memory, forward map[uint32]uint32) Ptr {
	if na, ok := forward[p.Addr()]; ok {
		return makePtr(p.Tag(), na)
	}
	switch p.Tag() {
	case TagTyp, TagNum:
		na := dst.alloc(0)
		forward[p.Addr()] = na
		return makePtr(p.Tag(), na)
	case TagVal, TagHol, TagRef:
		na := dst.alloc(s.live.get(p.Addr()))
		forward[p.Addr()] = na
		return makePtr(p.Tag(), na)
	case TagVar:
		binderOld := s.live.get(p.Addr())
		binderNew, ok := forward[binderOld]
		if !ok {
			// The binder LAM is not reachable from root (root lies inside
			// a body that a beta step already opened), so copy it now;
			// copying its body may forward this Var as well.
			s.copyReachable(makePtr(TagLam, binderOld), dst, forward)
			if na, done := forward[p.Addr()]; done {
				return makePtr(TagVar, na)
			}
			binderNew = forward[binderOld]
		}
		na := dst.alloc(binderNew)
		forward[p.Addr()] = na
		return makePtr(TagVar, na)
	case TagLam:
		na := dst.alloc(uint32(Nil), uint32(Nil), 0)
		forward[p.Addr()] = na
		var valNew Ptr = Nil
		if valOld := Ptr(s.live.get(p.Addr())); !valOld.IsNil() {
			valNew = s.copyReachable(valOld, dst, forward)
		}
		var bindNew Ptr = Nil
		if bindOld := Ptr(s.live.get(p.Addr() + 1)); !bindOld.IsNil() {
			bindNew = s.copyReachable(bindOld, dst, forward)
		}
		bodyNew := s.copyReachable(Ptr(s.live.get(p.Addr()+2)), dst, forward)
		dst.set(na, uint32(valNew))
		dst.set(na+1, uint32(bindNew))
		dst.set(na+2, uint32(bodyNew))
		return makePtr(TagLam, na)
	case TagApp:
		na := dst.alloc(0, 0)
		forward[p.Addr()] = na
		fnNew := s.copyReachable(Ptr(s.live.get(p.Addr())), dst, forward)
		argNew := s.copyReachable(Ptr(s.live.get(p.Addr()+1)), dst, forward)
		dst.set(na, uint32(fnNew))
		dst.set(na+1, uint32(argNew))
		return makePtr(TagApp, na)
	case TagAll:
		na := dst.alloc(s.live.get(p.Addr()), 0, 0)
		forward[p.Addr()] = na
		bindNew := s.copyReachable(Ptr(s.live.get(p.Addr()+1)), dst, forward)
		bodyNew := s.copyReachable(Ptr(s.live.get(p.Addr()+2)), dst, forward)
		dst.set(na+1, uint32(bindNew))
		dst.set(na+2, uint32(bodyNew))
		return makePtr(TagAll, na)
	case TagSlf:
		na := dst.alloc(0)
		forward[p.Addr()] = na
		bodyNew := s.copyReachable(Ptr(s.live.get(p.Addr())), dst, forward)
		dst.set(na, uint32(bodyNew))
		return makePtr(TagSlf, na)
	case TagOp1, TagOp2:
		na := dst.alloc(s.live.get(p.Addr()), 0, 0)
		forward[p.Addr()] = na
		n0New := s.copyReachable(Ptr(s.live.get(p.Addr()+1)), dst, forward)
		n1New := s.copyReachable(Ptr(s.live.get(p.Addr()+2)), dst, forward)
		dst.set(na+1, uint32(n0New))
		dst.set(na+2, uint32(n1New))
		return makePtr(p.Tag(), na)
	case TagIte:
		na := dst.alloc(0, 0, 0)
		forward[p.Addr()] = na
		condNew := s.copyReachable(Ptr(s.live.get(p.Addr())), dst, forward)
		iftNew := s.copyReachable(Ptr(s.live.get(p.Addr()+1)), dst, forward)
		iffNew := s.copyReachable(Ptr(s.live.get(p.Addr()+2)), dst, forward)
		dst.set(na, uint32(condNew))
		dst.set(na+1, uint32(iftNew))
		dst.set(na+2, uint32(iffNew))
		return makePtr(TagIte, na)
	}
	return p
}

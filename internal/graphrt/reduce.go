package graphrt

import (
	"fmt"

	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

// Session holds one live memory, seeded by NewSession from a
// definition's compiled template, and the Stats of the work done in it.
// Every Ptr a Session returns is only meaningful against that memory.
type Session struct {
	m                *Machine
	live             *memory
	stats            Stats
	lastCollectedLen int
}

// NewSession seeds a live memory from entry's compiled template.
func NewSession(m *Machine, entry string) (*Session, Ptr, error) {
	id, ok := m.defID[entry]
	if !ok {
		return nil, Nil, fmt.Errorf("graphrt: unknown entry %q", entry)
	}
	s := &Session{m: m, live: newMemory(len(m.defs[id].words) * 4)}
	root := m.defs[id].copyInto(s.live)
	s.stats.Copy++
	s.stats.track(s.live)
	return s, root, nil
}

func (s *Session) Stats() Stats { return s.stats }

// WeakHead reduces root to weak head normal form: a LAM, a VAL, or a
// stuck neutral spine (VAR or a numeric op/conditional with a non-VAL
// operand still outstanding).
func (s *Session) WeakHead(root Ptr) (Ptr, error) {
	var spine []Ptr // addresses of APP nodes on the current spine, outermost first
	cur := root
	for {
		s.stats.track(s.live)
		switch cur.Tag() {
		case TagRef:
			defID := s.live.get(cur.Addr())
			if int(defID) >= len(s.m.defs) {
				return Nil, rtOOB(defID)
			}
			cur = s.m.defs[defID].copyInto(s.live)
			s.stats.Copy++
		case TagApp:
			spine = append(spine, cur)
			cur = Ptr(s.live.get(cur.Addr()))
		case TagLam:
			if len(spine) == 0 {
				return cur, nil
			}
			appPtr := spine[len(spine)-1]
			spine = spine[:len(spine)-1]
			argPtr := Ptr(s.live.get(appPtr.Addr() + 1))
			s.live.set(cur.Addr(), uint32(argPtr))
			cur = Ptr(s.live.get(cur.Addr() + 2))
			s.stats.Beta++
		case TagVar:
			binderAddr := s.live.get(cur.Addr())
			val := Ptr(s.live.get(binderAddr))
			if val == Nil {
				return s.rebuildSpine(cur, spine), nil
			}
			cur = val
		case TagOp1, TagOp2:
			res, progressed, err := s.reduceOp(cur)
			if err != nil {
				return Nil, err
			}
			if !progressed {
				return s.rebuildSpine(cur, spine), nil
			}
			cur = res
		case TagIte:
			res, progressed, err := s.reduceIte(cur)
			if err != nil {
				return Nil, err
			}
			if !progressed {
				return s.rebuildSpine(cur, spine), nil
			}
			cur = res
		default:
			return s.rebuildSpine(cur, spine), nil
		}
	}
}

// rebuildSpine re-wraps a stuck head back under its unreduced
// applications. Since WeakHead never mutates an APP node's own
// words in place (only a LAM's variable cell), the outermost APP on the
// spine already points, transitively, at the stuck head: rebuilding is
// just returning that outermost pointer unchanged.
func (s *Session) rebuildSpine(head Ptr, spine []Ptr) Ptr {
	if len(spine) == 0 {
		return head
	}
	return spine[0]
}

func (s *Session) reduceOp(p Ptr) (Ptr, bool, error) {
	opWord := s.live.get(p.Addr())
	n0, err := s.WeakHead(Ptr(s.live.get(p.Addr() + 1)))
	if err != nil {
		return Nil, false, err
	}
	n1, err := s.WeakHead(Ptr(s.live.get(p.Addr() + 2)))
	if err != nil {
		return Nil, false, err
	}
	if n0.Tag() != TagVal || n1.Tag() != TagVal {
		return Nil, false, nil
	}
	x := s.live.get(n0.Addr())
	y := s.live.get(n1.Addr())
	res, ok := reduce.ApplyOp(term.Op(opWord), x, y)
	if !ok {
		return Nil, false, rtDivByZero()
	}
	addr := s.live.alloc(res)
	return makePtr(TagVal, addr), true, nil
}

func (s *Session) reduceIte(p Ptr) (Ptr, bool, error) {
	cond, err := s.WeakHead(Ptr(s.live.get(p.Addr())))
	if err != nil {
		return Nil, false, err
	}
	if cond.Tag() != TagVal {
		return Nil, false, nil
	}
	if s.live.get(cond.Addr()) != 0 {
		return Ptr(s.live.get(p.Addr() + 1)), true, nil
	}
	return Ptr(s.live.get(p.Addr() + 2)), true, nil
}

// Normalize reduces root to weak head normal form and then recurses into
// its children, giving a full normal form with no outstanding redex
// anywhere, including under LAM bodies and All/Slf's structural
// children. Used for observing and round-tripping a result, not for the
// reduction loop itself (which only ever needs WeakHead).
func (s *Session) Normalize(root Ptr) (Ptr, error) {
	head, err := s.WeakHead(root)
	if err != nil {
		return Nil, err
	}
	switch head.Tag() {
	case TagLam:
		bodyPtr := Ptr(s.live.get(head.Addr() + 2))
		norm, err := s.Normalize(bodyPtr)
		if err != nil {
			return Nil, err
		}
		s.live.set(head.Addr()+2, uint32(norm))
		return head, nil
	case TagApp:
		funcNorm, err := s.Normalize(Ptr(s.live.get(head.Addr())))
		if err != nil {
			return Nil, err
		}
		argNorm, err := s.Normalize(Ptr(s.live.get(head.Addr() + 1)))
		if err != nil {
			return Nil, err
		}
		s.live.set(head.Addr(), uint32(funcNorm))
		s.live.set(head.Addr()+1, uint32(argNorm))
		return head, nil
	case TagAll:
		bindNorm, err := s.Normalize(Ptr(s.live.get(head.Addr() + 1)))
		if err != nil {
			return Nil, err
		}
		bodyNorm, err := s.Normalize(Ptr(s.live.get(head.Addr() + 2)))
		if err != nil {
			return Nil, err
		}
		s.live.set(head.Addr()+1, uint32(bindNorm))
		s.live.set(head.Addr()+2, uint32(bodyNorm))
		return head, nil
	case TagSlf:
		bodyNorm, err := s.Normalize(Ptr(s.live.get(head.Addr())))
		if err != nil {
			return Nil, err
		}
		s.live.set(head.Addr(), uint32(bodyNorm))
		return head, nil
	case TagOp1, TagOp2:
		// Reached only when stuck on a free variable; still worth
		// normalizing each operand for a faithful round trip.
		n0, err := s.Normalize(Ptr(s.live.get(head.Addr() + 1)))
		if err != nil {
			return Nil, err
		}
		n1, err := s.Normalize(Ptr(s.live.get(head.Addr() + 2)))
		if err != nil {
			return Nil, err
		}
		s.live.set(head.Addr()+1, uint32(n0))
		s.live.set(head.Addr()+2, uint32(n1))
		return head, nil
	case TagIte:
		cond, err := s.Normalize(Ptr(s.live.get(head.Addr())))
		if err != nil {
			return Nil, err
		}
		ift, err := s.Normalize(Ptr(s.live.get(head.Addr() + 1)))
		if err != nil {
			return Nil, err
		}
		iff, err := s.Normalize(Ptr(s.live.get(head.Addr() + 2)))
		if err != nil {
			return Nil, err
		}
		s.live.set(head.Addr(), uint32(cond))
		s.live.set(head.Addr()+1, uint32(ift))
		s.live.set(head.Addr()+2, uint32(iff))
		return head, nil
	}
	return head, nil
}

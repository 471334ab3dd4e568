package internet

import "kindkernel/internal/term"

// isDupLabel reports whether label identifies a fan-out duplicator
// rather than a genuine beta NOD(0) or one of the reserved bookkeeping
// labels (branch pairs, anchors, definition sources).
func isDupLabel(label uint32) bool {
	return label != 0 && label != iteBranchLabel && label != anchorLabel && label != defSourceLabel
}

// Decompile reconstructs a term from whatever value is currently linked
// to at. scope holds the address of every enclosing Lam's NOD(0), so a
// wire that resolves directly to one of their aux1 ports becomes the
// matching de-Bruijn Var.
func (n *Net) Decompile(at Port) *term.Term {
	return n.decompile(at, nil)
}

func (n *Net) decompile(at Port, scope []uint32) *term.Term {
	cur := n.resolveValue(at)
	switch cur.index() {
	case 0:
		return n.decompileNode(cur.node(), scope)
	case 1:
		return n.varTermFor(cur.node(), scope)
	case 2:
		return n.decompileApp(cur.node(), scope)
	default:
		return term.NewHol("<internet-decompile-error>")
	}
}

// resolveValue follows at's partner, transparently hopping through any
// fan-out duplicator it lands on (by crossing to whatever its principal
// connects to) until it reaches a port that isn't a duplicator's aux
// slot: a genuine node's principal (a value), a Lam/App NOD(0)'s aux1
// (a variable occurrence), or a NOD(0)'s aux2 (a stuck application's
// result). Every branch of a normalized duplicator chain carries the
// same value, so there is nothing to lose by always crossing toward the
// source.
func (n *Net) resolveValue(at Port) Port {
	cur := n.partner(at)
	for cur.index() != 0 && n.kind(cur.node()) == KindNod && isDupLabel(n.payload(cur.node())) {
		cur = n.partner(portOf(cur.node(), 0))
	}
	return cur
}

// decompileApp reconstructs a stuck application: addr's principal leads
// to the function value, aux1 to the argument.
func (n *Net) decompileApp(addr uint32, scope []uint32) *term.Term {
	fn := n.decompile(portOf(addr, 0), scope)
	argm := n.decompile(portOf(addr, 1), scope)
	return term.NewApp(fn, argm, false)
}

func (n *Net) varTermFor(lamAddr uint32, scope []uint32) *term.Term {
	for i := len(scope) - 1; i >= 0; i-- {
		if scope[i] == lamAddr {
			return term.NewVar(uint32(len(scope) - 1 - i))
		}
	}
	return term.NewHol("<internet-decompile-free-variable>")
}

func (n *Net) decompileNode(addr uint32, scope []uint32) *term.Term {
	switch n.kind(addr) {
	case KindVal:
		return term.NewVal(n.payload(addr))
	case KindTyp:
		return term.NewTyp()
	case KindNumSort:
		return term.NewNum()
	case KindNod:
		if n.payload(addr) != 0 {
			// A bare duplicator reached as a value (rather than hopped
			// through) means its source is the actual content.
			return n.decompile(portOf(addr, 0), scope)
		}
		body := n.decompile(portOf(addr, 2), append(scope, addr))
		return term.NewLam("x", nil, body, false)
	case KindOp1, KindOp2:
		op := term.Op(n.payload(addr))
		num0 := n.decompile(portOf(addr, 0), scope)
		num1 := n.decompile(portOf(addr, 1), scope)
		if n.kind(addr) == KindOp1 {
			return term.NewOp1(op, num0, num1)
		}
		return term.NewOp2(op, num0, num1)
	case KindIte:
		cond := n.decompile(portOf(addr, 0), scope)
		pairPort := n.partner(portOf(addr, 1))
		pairAddr := pairPort.node()
		ift := n.decompile(portOf(pairAddr, 1), scope)
		iff := n.decompile(portOf(pairAddr, 2), scope)
		return term.NewIte(cond, ift, iff)
	}
	return term.NewHol("<internet-decompile-error>")
}

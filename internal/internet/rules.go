package internet

import (
	"fmt"

	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

// iteBranchLabel is the duplicator label reserved for the pair node an
// Ite compiles its two branches into; no ordinary sharing duplicator is
// ever allocated with this label, so meeting it unambiguously means
// "this is a branch pair, not a shared value".
const iteBranchLabel uint32 = 0xFFFF

func (n *Net) extAux(addr uint32, idx uint8) Port {
	return n.partner(portOf(addr, idx))
}

// tieOff terminates a dangling port against an inert zero literal. The
// node kinds here carry no eraser agent, so a branch or variable use
// that turns out to be unused is wired to a harmless sink rather than
// garbage-collected.
func (n *Net) tieOff(p Port) {
	if p == NilPort {
		return
	}
	sink := n.alloc(KindVal, 0)
	n.link(portOf(sink, 0), p)
}

// selfLooped reports whether addr's own aux1 and aux2 are wired directly
// to each other: the identity encoding \x.x produces exactly this, since
// a Lam whose body is its own bound variable links its variable wire
// straight to its body wire.
func (n *Net) selfLooped(addr uint32) bool {
	return n.extAux(addr, 1) == portOf(addr, 2)
}

// annihilate fires the same-shape case: both nodes vanish and their aux
// ports are linked straight across to each other. This is both the
// NOD(k)/NOD(k) beta rule (aux1 carries variable<->argument, aux2
// carries body<->result) and the structural OP1/OP1, OP2/OP2, ITE/ITE
// cases.
//
// Either side may be self-looped (its own aux1 and aux2 wired directly
// to each other, as \x.x compiles to) rather than wired out to external
// structure. Reading both sides' external aux ports before relinking
// handles the ordinary case; a self-looped side instead passes the
// other side's two boundary wires straight through to each other, since
// that side contributes no structure of its own to the result.
func (n *Net) annihilate(a, b uint32) {
	if n.selfLooped(a) {
		pb1, pb2 := n.extAux(b, 1), n.extAux(b, 2)
		n.link(pb1, pb2)
		n.freeNode(a)
		n.freeNode(b)
		return
	}
	if n.selfLooped(b) {
		pa1, pa2 := n.extAux(a, 1), n.extAux(a, 2)
		n.link(pa1, pa2)
		n.freeNode(a)
		n.freeNode(b)
		return
	}
	pa1, pa2 := n.extAux(a, 1), n.extAux(a, 2)
	pb1, pb2 := n.extAux(b, 1), n.extAux(b, 2)
	n.link(pa1, pb1)
	n.link(pa2, pb2)
	n.freeNode(a)
	n.freeNode(b)
}

// duplicate fires the commutation case between two differently-shaped
// (or differently-labelled NOD) nodes: each is copied through the
// other, the classic interaction-net diamond. The self-loop shortcut
// from annihilate applies here too: a self-looped side still needs
// copying (the duplicator on the other side legitimately wants two
// independent copies of it), so instead of reading stale partner
// addresses, each copy of the self-looped side is wired to loop on
// itself exactly as the original did.
func (n *Net) duplicate(a, b uint32) {
	ka, la := n.kind(a), n.payload(a)
	kb, lb := n.kind(b), n.payload(b)

	a1 := n.alloc(ka, la)
	a2 := n.alloc(ka, la)
	b1 := n.alloc(kb, lb)
	b2 := n.alloc(kb, lb)

	aLooped := n.selfLooped(a)
	bLooped := n.selfLooped(b)

	if !aLooped {
		pa1, pa2 := n.extAux(a, 1), n.extAux(a, 2)
		n.link(pa1, portOf(b1, 0))
		n.link(pa2, portOf(b2, 0))
	}
	if !bLooped {
		pb1, pb2 := n.extAux(b, 1), n.extAux(b, 2)
		n.link(pb1, portOf(a1, 0))
		n.link(pb2, portOf(a2, 0))
	}

	n.link(portOf(a1, 1), portOf(b1, 1))
	n.link(portOf(a1, 2), portOf(b2, 1))
	n.link(portOf(a2, 1), portOf(b1, 2))
	n.link(portOf(a2, 2), portOf(b2, 2))

	if aLooped {
		n.link(portOf(b1, 0), portOf(b2, 0))
	}
	if bLooped {
		n.link(portOf(a1, 0), portOf(a2, 0))
	}

	n.freeNode(a)
	n.freeNode(b)
}

// fire inspects the active pair rooted at addr, if any, and applies the
// matching rewrite rule. It returns false (no error) when addr's
// principal port has no partner, or its partner isn't itself principal.
func (n *Net) fire(addr uint32) (bool, error) {
	other, ok := n.isActivePair(addr)
	if !ok {
		return false, nil
	}
	ka, kb := n.kind(addr), n.kind(other)

	if ka == KindVal && kb == KindVal {
		// Two literals wired together (e.g. a tied-off unused literal and
		// its sink) have nothing to compute.
		return false, nil
	}
	if ka == KindVal {
		return n.fireNumeric(other, addr)
	}
	if kb == KindVal {
		return n.fireNumeric(addr, other)
	}

	if ka == KindNod && kb == KindNod {
		if n.payload(addr) == n.payload(other) {
			n.annihilate(addr, other)
		} else {
			n.duplicate(addr, other)
		}
		n.stats.Rewrites++
		return true, nil
	}
	if ka == kb {
		n.annihilate(addr, other)
		n.stats.Rewrites++
		return true, nil
	}
	if ka == KindNod || kb == KindNod {
		n.duplicate(addr, other)
		n.stats.Rewrites++
		return true, nil
	}
	return false, fmt.Errorf("internet: no rewrite rule for kinds %d/%d", ka, kb)
}

func (n *Net) fireNumeric(opAddr, numAddr uint32) (bool, error) {
	switch n.kind(opAddr) {
	case KindOp1:
		return n.fireOp1Numeric(opAddr, numAddr)
	case KindOp2:
		return n.fireOp2Numeric(opAddr, numAddr)
	case KindNod:
		return n.fireNodNumeric(opAddr, numAddr)
	case KindIte:
		return n.fireIteNumeric(opAddr, numAddr)
	}
	return false, fmt.Errorf("internet: a numeric literal can't react with kind %d", n.kind(opAddr))
}

// fireOp2Numeric demotes a binary operator to a unary one once its
// first operand resolves: the resolved numeral moves onto aux1 and the
// still-unresolved second operand becomes the new node's principal.
func (n *Net) fireOp2Numeric(op2Addr, numAddr uint32) (bool, error) {
	opcode := n.payload(op2Addr)
	operand1 := n.extAux(op2Addr, 1)
	result := n.extAux(op2Addr, 2)

	op1Addr := n.alloc(KindOp1, opcode)
	n.link(portOf(op1Addr, 0), operand1)
	n.link(portOf(op1Addr, 1), portOf(numAddr, 0))
	n.link(portOf(op1Addr, 2), result)

	n.freeNode(op2Addr)
	n.stats.Rewrites++
	return true, nil
}

// fireOp1Numeric computes once both operands are known: aux1 already
// carries the first (a Num node, by construction), and numAddr is the
// second, arriving through the principal port.
func (n *Net) fireOp1Numeric(op1Addr, numAddr uint32) (bool, error) {
	knownAddr := n.extAux(op1Addr, 1).node()
	if n.kind(knownAddr) != KindVal {
		return false, fmt.Errorf("internet: OP1's aux1 must carry a resolved operand")
	}
	num0 := n.payload(numAddr)   // arrived through the principal port, the Num0 role
	num1 := n.payload(knownAddr) // already resolved on aux1, the Num1 role
	result, ok := reduce.ApplyOp(term.Op(n.payload(op1Addr)), num0, num1)
	if !ok {
		return false, rtDivByZero()
	}
	out := n.extAux(op1Addr, 2)
	resAddr := n.alloc(KindVal, result)
	n.link(portOf(resAddr, 0), out)

	n.freeNode(op1Addr)
	n.freeNode(knownAddr)
	n.freeNode(numAddr)
	n.stats.Rewrites++
	return true, nil
}

// fireNodNumeric fans a numeral out to both of a duplicator's use
// sites: a shared literal is cheap enough to copy rather than share.
func (n *Net) fireNodNumeric(nodAddr, numAddr uint32) (bool, error) {
	v := n.payload(numAddr)
	p1, p2 := n.extAux(nodAddr, 1), n.extAux(nodAddr, 2)

	c1 := n.alloc(KindVal, v)
	n.link(portOf(c1, 0), p1)
	c2 := n.alloc(KindVal, v)
	n.link(portOf(c2, 0), p2)

	n.freeNode(nodAddr)
	n.freeNode(numAddr)
	n.stats.Rewrites++
	return true, nil
}

// fireIteNumeric resolves a conditional once its scrutinee is known:
// aux1 leads to a reserved branch-pair NOD holding the two arms, aux2
// is the result wire. The unchosen arm is tied off since there is no
// eraser agent to collect it.
func (n *Net) fireIteNumeric(iteAddr, numAddr uint32) (bool, error) {
	pairPort := n.extAux(iteAddr, 1)
	if pairPort.index() != 0 {
		return false, fmt.Errorf("internet: ITE's aux1 must lead to a branch pair's principal port")
	}
	pairAddr := pairPort.node()
	if n.kind(pairAddr) != KindNod || n.payload(pairAddr) != iteBranchLabel {
		return false, fmt.Errorf("internet: ITE's aux1 must lead to the reserved branch-pair NOD")
	}

	chosenIdx, otherIdx := uint8(1), uint8(2)
	if n.payload(numAddr) == 0 {
		chosenIdx, otherIdx = 2, 1
	}
	chosen := n.extAux(pairAddr, chosenIdx)
	other := n.extAux(pairAddr, otherIdx)
	result := n.extAux(iteAddr, 2)

	n.link(chosen, result)
	n.tieOff(other)

	n.freeNode(iteAddr)
	n.freeNode(numAddr)
	n.freeNode(pairAddr)
	n.stats.Rewrites++
	return true, nil
}

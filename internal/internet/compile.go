package internet

import (
	"fmt"

	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

// binder tracks one Lam's bound-variable wire while its body is being
// compiled: every Var occurrence under it registers the port that wants
// the value, and once the body is fully compiled the accumulated list
// is fanned out from the binder's own aux1 port.
type binder struct {
	addr    uint32
	pending []Port
}

// compiler builds a Net from a set of mutually-referencing definitions.
// Unlike the graph runtime's copy-per-Ref templates, a definition is
// compiled into live nodes exactly once; every Ref to it registers a
// consumer port the same way a bound variable does, and the shared
// value is fanned out through a duplicator chain once the whole program
// has been walked.
type compiler struct {
	net        *Net
	defSource  map[string]uint32 // name -> scratch node whose aux1 holds the compiled value
	defPending map[string][]Port
}

const defSourceLabel uint32 = 0xFFFD

// Compile discovers every definition transitively reachable from entry,
// compiles each one's erased body exactly once, and wires every
// reference (local variable or named Ref) through a fan-out duplicator
// chain. It returns the net and the anchor node whose aux1 holds the
// entry's current value (suitable for Net.ReduceLazy and Net.Peek).
func Compile(defs map[string]*term.Term, entry string) (*Net, uint32, error) {
	if _, ok := defs[entry]; !ok {
		return nil, 0, fmt.Errorf("internet: unknown entry definition %q", entry)
	}
	order := []string{}
	queued := map[string]bool{entry: true}
	queue := []string{entry}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		body, ok := defs[name]
		if !ok {
			return nil, 0, fmt.Errorf("internet: reference to unknown definition %q", name)
		}
		order = append(order, name)
		for _, ref := range collectRefs(reduce.Erase(body)) {
			if !queued[ref] {
				queued[ref] = true
				queue = append(queue, ref)
			}
		}
	}

	c := &compiler{
		net:        NewNet(64 * len(order)),
		defSource:  map[string]uint32{},
		defPending: map[string][]Port{},
	}
	for _, name := range order {
		c.defSource[name] = c.net.alloc(KindNod, defSourceLabel)
	}
	for _, name := range order {
		src := c.defSource[name]
		c.compile(reduce.Erase(defs[name]), nil, portOf(src, 1))
	}

	// The caller is just one more consumer of entry's value, exactly like
	// an in-program Ref to it (which matters when entry recurses into
	// itself by name): register an anchor for it before entry goes
	// through the same fan-out-and-free pass as every other definition.
	anchor := c.net.alloc(KindNod, anchorLabel)
	c.defPending[entry] = append(c.defPending[entry], portOf(anchor, 1))

	for _, name := range order {
		src := c.defSource[name]
		value := c.net.partner(portOf(src, 1))
		c.net.fanOut(value, c.defPending[name])
		c.net.freeNode(src)
	}
	return c.net, anchor, nil
}

// collectRefs gathers the distinct Ref names an erased term mentions, in
// first-encountered order.
func collectRefs(t *term.Term) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(*term.Term)
	walk = func(t *term.Term) {
		if t == nil {
			return
		}
		switch t.Kind {
		case term.Ref:
			if !seen[t.RefName] {
				seen[t.RefName] = true
				out = append(out, t.RefName)
			}
		case term.All, term.Lam:
			walk(t.Bind)
			walk(t.Body)
		case term.Slf:
			walk(t.Body)
		case term.App:
			walk(t.Func)
			walk(t.Argm)
		case term.Op1, term.Op2:
			walk(t.Num0)
			walk(t.Num1)
		case term.Ite:
			walk(t.Cond)
			walk(t.Ift)
			walk(t.Iff)
		}
	}
	walk(t)
	return out
}

// fanOut wires source to every port in consumers: directly if there's
// exactly one, tied off if there are none, through a fresh duplicator
// chain otherwise.
func (n *Net) fanOut(source Port, consumers []Port) {
	switch len(consumers) {
	case 0:
		n.tieOff(source)
	case 1:
		n.link(source, consumers[0])
	default:
		label := n.fanOutLabel()
		cur := source
		for i := 0; i < len(consumers)-1; i++ {
			dup := n.alloc(KindNod, label)
			n.link(cur, portOf(dup, 0))
			n.link(portOf(dup, 1), consumers[i])
			cur = portOf(dup, 2)
		}
		n.link(cur, consumers[len(consumers)-1])
	}
}

// fanOutLabel hands out a fresh duplicator label, distinct from the
// beta label (0) and the reserved branch-pair/anchor/def-source labels.
func (n *Net) fanOutLabel() uint32 {
	n.labelCounter++
	return n.labelCounter
}

// compile emits t's nodes, linking its computed value into want. t must
// already be erased. scope holds one binder per enclosing Lam,
// outermost first; a Var registers want against its binder instead of
// producing a node of its own.
func (c *compiler) compile(t *term.Term, scope []*binder, want Port) {
	switch t.Kind {
	case term.Var:
		b := scope[uint32(len(scope))-1-t.Index]
		b.pending = append(b.pending, want)
	case term.Typ:
		addr := c.net.alloc(KindTyp, 0)
		c.net.link(portOf(addr, 0), want)
	case term.Num:
		addr := c.net.alloc(KindNumSort, 0)
		c.net.link(portOf(addr, 0), want)
	case term.Val:
		addr := c.net.alloc(KindVal, t.Numb)
		c.net.link(portOf(addr, 0), want)
	case term.Hol:
		// A hole has no runtime value; tie it off like an unused branch.
		c.net.tieOff(want)
	case term.Ref:
		c.defPending[t.RefName] = append(c.defPending[t.RefName], want)
	case term.All:
		// A function type carries no runtime value in either machine;
		// unlike the graph runtime (which keeps Bind for decompile
		// fidelity), the net compiles it straight to an inert placeholder.
		addr := c.net.alloc(KindTyp, 0)
		c.net.link(portOf(addr, 0), want)
	case term.Slf:
		addr := c.net.alloc(KindTyp, 0)
		c.net.link(portOf(addr, 0), want)
	case term.Lam:
		addr := c.net.alloc(KindNod, 0)
		c.net.link(portOf(addr, 0), want)
		b := &binder{addr: addr}
		c.compile(t.Body, append(scope, b), portOf(addr, 2))
		c.net.fanOut(portOf(addr, 1), b.pending)
	case term.App:
		addr := c.net.alloc(KindNod, 0)
		// The function position meets this node's principal so that, if
		// it resolves to a Lam, the two NOD(0)s form a beta redex.
		c.compile(t.Func, scope, portOf(addr, 0))
		c.compile(t.Argm, scope, portOf(addr, 1))
		c.net.link(portOf(addr, 2), want)
	case term.Op1, term.Op2:
		kind := KindOp2
		if t.Kind == term.Op1 {
			kind = KindOp1
		}
		addr := c.net.alloc(kind, uint32(t.OpCode))
		c.compile(t.Num0, scope, portOf(addr, 0))
		c.compile(t.Num1, scope, portOf(addr, 1))
		c.net.link(portOf(addr, 2), want)
	case term.Ite:
		iteAddr := c.net.alloc(KindIte, 0)
		pairAddr := c.net.alloc(KindNod, iteBranchLabel)
		c.compile(t.Cond, scope, portOf(iteAddr, 0))
		c.net.link(portOf(iteAddr, 1), portOf(pairAddr, 0))
		c.compile(t.Ift, scope, portOf(pairAddr, 1))
		c.compile(t.Iff, scope, portOf(pairAddr, 2))
		c.net.link(portOf(iteAddr, 2), want)
	default:
		panic(fmt.Sprintf("internet: compile saw non-erased kind %s", t.Kind))
	}
}

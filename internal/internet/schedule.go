package internet

// anchorLabel is reserved for Watch's bookkeeping nodes; compile never
// allocates an ordinary sharing duplicator with this label.
const anchorLabel uint32 = 0xFFFE

// Watch allocates an anchor node and links its aux1 to v, giving the
// caller a stable handle to re-read "whatever is currently wired there"
// across however many rewrites relink that wire.
func (n *Net) Watch(v Port) uint32 {
	anchor := n.alloc(KindNod, anchorLabel)
	n.link(portOf(anchor, 1), v)
	return anchor
}

// Peek returns whatever is currently linked to anchor's aux1.
func (n *Net) Peek(anchor uint32) Port {
	return n.partner(portOf(anchor, 1))
}

// AnchorPort returns anchor's own aux1 port, the stable handle
// Decompile needs to read "whatever this anchor currently watches".
func AnchorPort(anchor uint32) Port {
	return portOf(anchor, 1)
}

// ReduceLazy drives rewrites only along the path from anchor. When
// anchor watches an aux port, the node behind it is waiting on its
// principal port, so the walk follows principal ports (through any node
// whose principal is itself fed by another node's aux port) until it
// reaches an active pair, fires it, and starts over from anchor. It
// stops when anchor watches a principal port (a value) or the walk finds
// no active pair. This mirrors the graph runtime's WeakHead: it computes
// a normal form's head without touching unrelated redexes elsewhere in
// the net.
func (n *Net) ReduceLazy(anchor uint32) (Port, error) {
	for {
		n.stats.Loops++
		target := n.Peek(anchor)
		if target == NilPort || target.index() == 0 {
			return target, nil
		}
		addr := target.node()
		for steps := 0; ; steps++ {
			if !n.nodes[addr].live {
				return NilPort, rtOOB(addr)
			}
			p := n.partner(portOf(addr, 0))
			if p == NilPort || p.index() == 0 || steps > len(n.nodes) {
				break
			}
			n.stats.Loops++
			addr = p.node()
		}
		changed, err := n.fire(addr)
		if err != nil {
			return NilPort, err
		}
		if !changed {
			return target, nil
		}
	}
}

// ReduceStrict drains every active pair in the net to a fixpoint,
// scanning for redexes rather than maintaining a redex queue.
func (n *Net) ReduceStrict() (int, error) {
	for {
		progressed := false
		for addr := range n.nodes {
			if !n.nodes[addr].live {
				continue
			}
			changed, err := n.fire(uint32(addr))
			if err != nil {
				return n.stats.Rewrites, err
			}
			if changed {
				progressed = true
			}
		}
		if !progressed {
			return n.stats.Rewrites, nil
		}
		n.stats.Loops++
	}
}

package graphrt

import (
	"fmt"

	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

// Machine holds the compiled template of every definition reachable
// from the entry; the live memory those templates are copied into
// belongs to a Session.
type Machine struct {
	defNames []string
	defID    map[string]uint32
	defs     []*template
	names    []string // Hol name table, shared across templates
}

// Compile walks defs from entry, discovering every transitively
// referenced definition first (so every Ref node can be compiled with
// its final defID already known, handling self- and mutual recursion
// without forward-reference patching), then erases and compiles each one
// into its own relocatable template.
func Compile(defs map[string]*term.Term, entry string) (*Machine, error) {
	if _, ok := defs[entry]; !ok {
		return nil, fmt.Errorf("graphrt: unknown entry definition %q", entry)
	}
	m := &Machine{defID: map[string]uint32{}}
	order := []string{}
	queue := []string{entry}
	queued := map[string]bool{entry: true}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		body, ok := defs[name]
		if !ok {
			return nil, fmt.Errorf("graphrt: reference to unknown definition %q", name)
		}
		m.defID[name] = uint32(len(order))
		order = append(order, name)
		for _, ref := range collectRefs(reduce.Erase(body)) {
			if !queued[ref] {
				queued[ref] = true
				queue = append(queue, ref)
			}
		}
	}
	m.defNames = order
	m.defs = make([]*template, len(order))
	for i, name := range order {
		b := &builder{m: m}
		root := b.compile(reduce.Erase(defs[name]), nil)
		m.defs[i] = &template{words: b.words, root: root, reloc: b.reloc}
	}
	return m, nil
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

// builder compiles one definition's erased body into a template,
// tracking the binder-cell address stack for Var resolution and which
// word offsets need relocation on copy.
type builder struct {
	m     *Machine
	words []uint32
	reloc relocSet
}

func (b *builder) alloc(words ...uint32) uint32 {
	addr := uint32(len(b.words))
	b.words = append(b.words, words...)
	return addr
}

func (b *builder) markPtr(addr uint32) {
	b.reloc.pointerSlots = append(b.reloc.pointerSlots, int(addr))
}

func (b *builder) markAddr(addr uint32) {
	b.reloc.addrSlots = append(b.reloc.addrSlots, int(addr))
}

func (b *builder) holeIndex(name string) uint32 {
	for i, n := range b.m.names {
		if n == name {
			return uint32(i)
		}
	}
	b.m.names = append(b.m.names, name)
	return uint32(len(b.m.names) - 1)
}

// compile emits t's nodes and returns its root pointer. t must already
// be erased: only the kinds Erase can produce are handled. scope holds
// binder-cell addresses, outermost first, for resolving a Var's
// de-Bruijn index into a back-link.
func (b *builder) compile(t *term.Term, scope []uint32) Ptr {
	switch t.Kind {
	case term.Var:
		binder := scope[uint32(len(scope))-1-t.Index]
		addr := b.alloc(binder)
		b.markAddr(addr)
		return makePtr(TagVar, addr)
	case term.Typ:
		addr := b.alloc(0)
		return makePtr(TagTyp, addr)
	case term.Num:
		addr := b.alloc(0)
		return makePtr(TagNum, addr)
	case term.Val:
		addr := b.alloc(t.Numb)
		return makePtr(TagVal, addr)
	case term.Hol:
		addr := b.alloc(b.holeIndex(t.HoleName))
		return makePtr(TagHol, addr)
	case term.Ref:
		defID, ok := b.m.defID[t.RefName]
		if !ok {
			panic(fmt.Sprintf("graphrt: %q was not discovered during the reachability scan", t.RefName))
		}
		addr := b.alloc(defID)
		return makePtr(TagRef, addr)
	case term.All:
		addr := b.alloc(boolWord(t.Erased), 0, 0)
		bindPtr := b.compile(t.Bind, scope)
		// All's parameter has no runtime cell; its own node address
		// stands in as the binder identity for decompiling a Var that
		// refers back to it from within Body.
		bodyPtr := b.compile(t.Body, append(scope, addr))
		b.words[addr+1] = uint32(bindPtr)
		b.words[addr+2] = uint32(bodyPtr)
		b.markPtr(addr + 1)
		b.markPtr(addr + 2)
		return makePtr(TagAll, addr)
	case term.Slf:
		addr := b.alloc(0)
		bodyPtr := b.compile(t.Body, append(scope, addr))
		b.words[addr] = uint32(bodyPtr)
		b.markPtr(addr)
		return makePtr(TagSlf, addr)
	case term.Lam:
		cellAddr := b.alloc(uint32(Nil), uint32(Nil), 0)
		bindPtr := Nil
		if t.Bind != nil {
			bindPtr = b.compile(t.Bind, scope)
		}
		bodyPtr := b.compile(t.Body, append(scope, cellAddr))
		b.words[cellAddr+1] = uint32(bindPtr)
		b.words[cellAddr+2] = uint32(bodyPtr)
		b.markPtr(cellAddr + 1)
		b.markPtr(cellAddr + 2)
		return makePtr(TagLam, cellAddr)
	case term.App:
		funcPtr := b.compile(t.Func, scope)
		argmPtr := b.compile(t.Argm, scope)
		addr := b.alloc(uint32(funcPtr), uint32(argmPtr))
		b.markPtr(addr)
		b.markPtr(addr + 1)
		return makePtr(TagApp, addr)
	case term.Op1, term.Op2:
		n0 := b.compile(t.Num0, scope)
		n1 := b.compile(t.Num1, scope)
		addr := b.alloc(uint32(t.OpCode), uint32(n0), uint32(n1))
		b.markPtr(addr + 1)
		b.markPtr(addr + 2)
		tag := TagOp2
		if t.Kind == term.Op1 {
			tag = TagOp1
		}
		return makePtr(tag, addr)
	case term.Ite:
		cond := b.compile(t.Cond, scope)
		ift := b.compile(t.Ift, scope)
		iff := b.compile(t.Iff, scope)
		addr := b.alloc(uint32(cond), uint32(ift), uint32(iff))
		b.markPtr(addr)
		b.markPtr(addr + 1)
		b.markPtr(addr + 2)
		return makePtr(TagIte, addr)
	}
	panic(fmt.Sprintf("graphrt: compile saw non-erased kind %s", t.Kind))
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

package graphrt

import "fortio.org/safecast"

// memory is the flat word store backing both a compiled definition's
// template and the live working graph. Every node is a short run of
// words starting at its own address; node shape is never stored in the
// words themselves, only in whichever Ptr values reference that address.
type memory struct {
	words []uint32
}

func newMemory(capHint int) *memory {
	return &memory{words: make([]uint32, 0, capHint)}
}

func (m *memory) alloc(words ...uint32) uint32 {
	addr, err := safecast.Conv[uint32](len(m.words))
	if err != nil {
		panic(err)
	}
	m.words = append(m.words, words...)
	return addr
}

func (m *memory) get(addr uint32) uint32 { return m.words[addr] }

func (m *memory) set(addr uint32, v uint32) { m.words[addr] = v }

func (m *memory) len() int { return len(m.words) }

// relocSet records, for a template built by a builder, which word offsets
// hold a relocatable Ptr (pointerSlots) versus a bare relocatable address
// (addrSlots, used only by Var's back-link to its binder cell). Every
// other word is a scalar (opcode, literal, defID, hole name index) and is
// copied verbatim.
type relocSet struct {
	pointerSlots []int
	addrSlots    []int
}

// template is one compiled top-level definition: a self-contained
// sub-memory whose addresses start at 0, plus its root pointer and the
// slots that need adjusting when it is copied into another memory.
type template struct {
	words []uint32
	root  Ptr
	reloc relocSet
}

// copyInto appends a relocated copy of t into dst and returns the
// relocated root pointer.
func (t *template) copyInto(dst *memory) Ptr {
	base, err := safecast.Conv[uint32](dst.len())
	if err != nil {
		panic(err)
	}
	words := make([]uint32, len(t.words))
	copy(words, t.words)
	for _, idx := range t.reloc.pointerSlots {
		words[idx] = uint32(relocate(Ptr(words[idx]), base))
	}
	for _, idx := range t.reloc.addrSlots {
		words[idx] += base
	}
	dst.words = append(dst.words, words...)
	return relocate(t.root, base)
}

// Stats counts reduction work: beta-steps taken, definition copies made,
// and the high-water mark of live memory length observed.
type Stats struct {
	Beta   int
	Copy   int
	MaxLen int
}

func (s *Stats) track(m *memory) {
	if n := m.len(); n > s.MaxLen {
		s.MaxLen = n
	}
}

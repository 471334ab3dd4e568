package equality

import (
	"testing"

	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

type testHoles struct {
	values     map[string]*term.Term
	depths     map[string]uint32
	conflicted map[string]bool
}

func newTestHoles() *testHoles {
	return &testHoles{
		values:     map[string]*term.Term{},
		depths:     map[string]uint32{},
		conflicted: map[string]bool{},
	}
}

func (h *testHoles) Lookup(name string) (*term.Term, uint32, bool) {
	if h.conflicted[name] {
		return nil, h.depths[name], true
	}
	v, ok := h.values[name]
	if !ok {
		return nil, 0, false
	}
	return v, h.depths[name], true
}

func (h *testHoles) Assign(name string, value *term.Term) {
	h.values[name] = value
}

func (h *testHoles) Conflict(name string) {
	h.conflicted[name] = true
}

func TestAlphaEquivalentLambdasAreEqual(t *testing.T) {
	sess := reduce.NewSession(nil, nil, nil)
	a := term.NewLam("x", term.NewTyp(), term.NewVar(0), false)
	b := term.NewLam("y", term.NewTyp(), term.NewVar(0), false)

	ok, err := Equal(sess, a, b)
	if err != nil || !ok {
		t.Fatalf("alpha-equivalent lambdas must be equal, ok=%v err=%v", ok, err)
	}
}

func TestRefUnfoldsToEqualBody(t *testing.T) {
	defs := map[string]*term.Term{"two": term.NewVal(2)}
	sess := reduce.NewSession(defs, nil, nil)

	ok, err := Equal(sess, term.NewRef("two", false), term.NewVal(2))
	if err != nil || !ok {
		t.Fatalf("a reference must be equal to its unfolded body, ok=%v err=%v", ok, err)
	}
}

func TestAnnIsTransparentUnderEquality(t *testing.T) {
	sess := reduce.NewSession(nil, nil, nil)
	five := term.NewVal(5)
	wrapped := term.NewAnn(term.NewNum(), term.NewVal(5), false)

	ok, err := Equal(sess, five, wrapped)
	if err != nil || !ok {
		t.Fatalf("Ann must be transparent to equality, ok=%v err=%v", ok, err)
	}
}

// Op1's right operand is always a literal by construction; equality must
// genuinely compare the two sides' literals rather than vacuously
// treating a side as equal to itself.
func TestOp1LiteralEqualityMismatch(t *testing.T) {
	sess := reduce.NewSession(nil, nil, nil)
	x := term.NewRef("x", false)

	fiveTail := term.NewOp1(term.OpAdd, x, term.NewVal(5))
	sixTail := term.NewOp1(term.OpAdd, x, term.NewVal(6))
	otherFiveTail := term.NewOp1(term.OpAdd, x, term.NewVal(5))

	ok, err := Equal(sess, fiveTail, sixTail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("Op1 nodes with different literal operands must not be equal")
	}

	ok, err = Equal(sess, fiveTail, otherFiveTail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("Op1 nodes with matching literal operands must be equal")
	}
}

func TestHoleAssignsThenReusesValue(t *testing.T) {
	holes := newTestHoles()
	holes.depths["?a"] = 0
	sess := reduce.NewSession(nil, holes, nil)

	hole := term.NewHol("?a")
	five := term.NewVal(5)

	ok, err := Equal(sess, hole, five)
	if err != nil || !ok {
		t.Fatalf("comparing an unresolved hole must assign it, ok=%v err=%v", ok, err)
	}
	assigned, _, found := holes.Lookup("?a")
	if !found || assigned == nil || term.Hash(assigned) != term.Hash(five) {
		t.Fatalf("hole was not assigned to the other side")
	}

	ok, err = Equal(sess, hole, five)
	if err != nil || !ok {
		t.Fatalf("re-comparing an assigned hole against its value must succeed, ok=%v err=%v", ok, err)
	}
}

func TestHoleConflictStillResolvesObligation(t *testing.T) {
	holes := newTestHoles()
	holes.depths["?a"] = 0
	sess := reduce.NewSession(nil, holes, nil)

	hole := term.NewHol("?a")
	if _, err := Equal(sess, hole, term.NewVal(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := Equal(sess, hole, term.NewVal(6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("a conflicting assignment marks the hole null but does not fail the obligation")
	}
	if !holes.conflicted["?a"] {
		t.Fatalf("hole should be marked conflicted after a mismatched re-assignment")
	}
}

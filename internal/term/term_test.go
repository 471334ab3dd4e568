package term

import "testing"

func TestHashAlphaStable(t *testing.T) {
	a := NewLam("x", NewNum(), NewVar(0), false)
	b := NewLam("y", NewNum(), NewVar(0), false)
	if Hash(a) != Hash(b) {
		t.Fatalf("alpha-equivalent terms must hash identically: %x != %x", Hash(a), Hash(b))
	}
}

func TestHashDistinguishesStructure(t *testing.T) {
	a := NewOp1(OpAdd, NewVar(0), NewVal(5))
	b := NewOp1(OpAdd, NewVar(0), NewVal(6))
	if Hash(a) == Hash(b) {
		t.Fatalf("Op1 with different literals must hash differently")
	}
}

func TestShiftComposes(t *testing.T) {
	tm := NewApp(NewVar(0), NewVar(3), false)
	lhs := Shift(Shift(tm, 2, 1), 3, 1)
	rhs := Shift(tm, 5, 1)
	if Hash(lhs) != Hash(rhs) {
		t.Fatalf("shift(shift(t,a,d),b,d) must equal shift(t,a+b,d)")
	}
}

func TestSubstOfIntroducedBinderIsIdentity(t *testing.T) {
	tm := NewApp(NewVar(0), NewVar(2), false)
	shifted := Shift(tm, 1, 0)
	back := Subst(shifted, NewVal(99), 0)
	if Hash(back) != Hash(tm) {
		t.Fatalf("subst(shift(t,1,d),v,d) must equal t")
	}
}

func TestSubstReplacesBoundVariable(t *testing.T) {
	body := NewOp2(OpAdd, NewVar(0), NewVal(1))
	replaced := Subst(body, NewVal(41), 0)
	if replaced.Kind != Op2 || replaced.Num0.Kind != Val || replaced.Num0.Numb != 41 {
		t.Fatalf("expected Var 0 replaced by Val 41, got %+v", replaced)
	}
}

func TestSubstManyAppliesIndependently(t *testing.T) {
	// Var 0 and Var 1 both get filled independently.
	body := NewApp(NewVar(0), NewVar(1), false)
	result := SubstMany(body, []*Term{NewVal(10), NewVal(20)}, 0)
	if result.Func.Kind != Val || result.Func.Numb != 10 {
		t.Fatalf("expected Var 0 -> 10, got %+v", result.Func)
	}
	if result.Argm.Kind != Val || result.Argm.Numb != 20 {
		t.Fatalf("expected Var 1 -> 20, got %+v", result.Argm)
	}
}

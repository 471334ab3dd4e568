package internet

import (
	"testing"

	"kindkernel/internal/term"
)

func TestIdentityApplicationReducesToArgument(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewApp(
			term.NewLam("x", nil, term.NewVar(0), false),
			term.NewVal(7),
			false,
		),
	}
	net, anchor, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	result, err := net.ReduceLazy(anchor)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if net.kind(result.node()) != KindVal {
		t.Fatalf("expected KindVal, got kind %d", net.kind(result.node()))
	}
	out := net.Decompile(portOf(anchor, 1))
	if out.Kind != term.Val || out.Numb != 7 {
		t.Fatalf("expected Val 7, got %+v", out)
	}
}

func TestNumericFoldReducesThroughSharedReference(t *testing.T) {
	defs := map[string]*term.Term{
		"inc": term.NewLam("n", nil, term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVal(1)), false),
		"main": term.NewOp2(term.OpMul,
			term.NewApp(term.NewRef("inc", false), term.NewVal(3), false),
			term.NewApp(term.NewRef("inc", false), term.NewVal(9), false),
		),
	}
	net, anchor, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := net.ReduceStrict(); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	out := net.Decompile(portOf(anchor, 1))
	if out.Kind != term.Val || out.Numb != 40 { // (3+1)*(9+1)
		t.Fatalf("expected Val 40, got %+v", out)
	}
}

func TestDivisionByZeroReportsRuntimeError(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewOp2(term.OpDiv, term.NewVal(1), term.NewVal(0)),
	}
	net, _, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := net.ReduceStrict(); err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
}

func TestCompileDecompileRoundTripsClosedLambda(t *testing.T) {
	original := term.NewLam("x", nil,
		term.NewApp(term.NewLam("y", nil, term.NewVar(0), false), term.NewVar(0), false),
		false,
	)
	defs := map[string]*term.Term{"main": original}
	net, anchor, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out := net.Decompile(portOf(anchor, 1))
	if term.Hash(out) != term.Hash(original) {
		t.Fatalf("round trip changed structure: got %+v", out)
	}
}

func TestStuckApplicationOnFreeVariableStaysNeutral(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewLam("f", nil, term.NewApp(term.NewVar(0), term.NewVal(1), false), false),
	}
	net, anchor, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	result, err := net.ReduceLazy(anchor)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if net.kind(result.node()) != KindNod || net.payload(result.node()) != 0 {
		t.Fatalf("expected an unreduced NOD(0) (the outer Lam), got kind %d payload %d",
			net.kind(result.node()), net.payload(result.node()))
	}
}

func TestConditionalSelectsNonzeroBranch(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewIte(term.NewVal(1), term.NewVal(11), term.NewVal(22)),
	}
	net, anchor, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := net.ReduceStrict(); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	out := net.Decompile(portOf(anchor, 1))
	if out.Kind != term.Val || out.Numb != 11 {
		t.Fatalf("expected Val 11, got %+v", out)
	}
}

func TestConditionalSelectsZeroBranch(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewIte(term.NewVal(0), term.NewVal(11), term.NewVal(22)),
	}
	net, anchor, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := net.ReduceStrict(); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	out := net.Decompile(portOf(anchor, 1))
	if out.Kind != term.Val || out.Numb != 22 {
		t.Fatalf("expected Val 22, got %+v", out)
	}
}

func TestDuplicatedVariableUseSharesStructure(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewApp(
			term.NewLam("x", nil, term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVar(0)), false),
			term.NewVal(21),
			false,
		),
	}
	net, anchor, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := net.ReduceStrict(); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	out := net.Decompile(portOf(anchor, 1))
	if out.Kind != term.Val || out.Numb != 42 {
		t.Fatalf("expected Val 42, got %+v", out)
	}
}

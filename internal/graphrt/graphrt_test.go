package graphrt

import (
	"testing"

	"kindkernel/internal/term"
)

func TestIdentityApplicationReducesToArgument(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewApp(
			term.NewLam("x", term.NewNum(), term.NewVar(0), false),
			term.NewVal(7),
			false,
		),
	}
	m, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sess, root, err := NewSession(m, "main")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	whnf, err := sess.WeakHead(root)
	if err != nil {
		t.Fatalf("whnf: %v", err)
	}
	if whnf.Tag() != TagVal {
		t.Fatalf("expected TagVal, got tag %d", whnf.Tag())
	}
	out := sess.Decompile(whnf)
	if out.Kind != term.Val || out.Numb != 7 {
		t.Fatalf("expected Val 7, got %+v", out)
	}
}

func TestNumericFoldReducesThroughReference(t *testing.T) {
	defs := map[string]*term.Term{
		"inc": term.NewLam("n", term.NewNum(), term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVal(1)), false),
		"main": term.NewOp2(term.OpMul,
			term.NewApp(term.NewRef("inc", false), term.NewVal(3), false),
			term.NewVal(2),
		),
	}
	m, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sess, root, err := NewSession(m, "main")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	whnf, err := sess.WeakHead(root)
	if err != nil {
		t.Fatalf("whnf: %v", err)
	}
	out := sess.Decompile(whnf)
	if out.Kind != term.Val || out.Numb != 8 {
		t.Fatalf("expected Val 8 ((3+1)*2), got %+v", out)
	}
	stats := sess.Stats()
	if stats.Beta == 0 {
		t.Fatalf("expected at least one beta step")
	}
	if stats.Copy == 0 {
		t.Fatalf("expected at least one reference copy")
	}
}

func TestDivisionByZeroReportsRuntimeError(t *testing.T) {
	defs := map[string]*term.Term{
		"main": term.NewOp2(term.OpDiv, term.NewVal(1), term.NewVal(0)),
	}
	m, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sess, root, err := NewSession(m, "main")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, err := sess.WeakHead(root); err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
}

func TestCompileDecompileRoundTripsClosedLambda(t *testing.T) {
	original := term.NewLam("x", term.NewNum(),
		term.NewApp(term.NewLam("y", term.NewNum(), term.NewVar(0), false), term.NewVar(0), false),
		false,
	)
	defs := map[string]*term.Term{"main": original}
	m, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sess, root, err := NewSession(m, "main")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	out := sess.Decompile(root)
	if term.Hash(out) != term.Hash(original) {
		t.Fatalf("round trip changed structure: got %+v", out)
	}
}

func TestCollectPreservesReachableResult(t *testing.T) {
	defs := map[string]*term.Term{
		"inc": term.NewLam("n", term.NewNum(), term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVal(1)), false),
		"main": term.NewApp(
			term.NewLam("x", term.NewNum(),
				term.NewApp(term.NewRef("inc", false), term.NewVar(0), false),
				false),
			term.NewVal(4),
			false,
		),
	}
	m, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sess, root, err := NewSession(m, "main")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	root, err = sess.WeakHead(root)
	if err != nil {
		t.Fatalf("whnf: %v", err)
	}
	root = sess.Collect(root)
	out := sess.Decompile(root)
	if out.Kind != term.Val || out.Numb != 5 {
		t.Fatalf("expected Val 5 after collection, got %+v", out)
	}
}

func TestStuckApplicationOnFreeVariableStaysNeutral(t *testing.T) {
	// A Lam whose body applies its own bound variable (uninstantiated by
	// any enclosing application) has nothing to beta-reduce against.
	defs := map[string]*term.Term{
		"main": term.NewLam("f", term.NewNum(), term.NewApp(term.NewVar(0), term.NewVal(1), false), false),
	}
	m, err := Compile(defs, "main")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sess, root, err := NewSession(m, "main")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	whnf, err := sess.WeakHead(root)
	if err != nil {
		t.Fatalf("whnf: %v", err)
	}
	if whnf.Tag() != TagLam {
		t.Fatalf("expected TagLam at top, got tag %d", whnf.Tag())
	}
}

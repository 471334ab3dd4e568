package lin

import (
	"testing"

	"kindkernel/internal/term"
)

func TestUsesCountsOccurrences(t *testing.T) {
	body := term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVar(0))
	if n := Uses(body, 0); n != 2 {
		t.Fatalf("expected 2 uses, got %d", n)
	}
}

func TestUsesSkipsErasedArgument(t *testing.T) {
	app := term.NewApp(term.NewVar(0), term.NewVar(0), true)
	if n := Uses(app, 0); n != 1 {
		t.Fatalf("expected 1 use (erased argument doesn't count), got %d", n)
	}
}

func TestIsAffineRejectsDoubleUse(t *testing.T) {
	lam := term.NewLam("x", term.NewNum(), term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVar(0)), false)
	if IsAffine(lam, nil) {
		t.Fatalf("λx. x .+. x must fail affinity")
	}
}

func TestIsAffineAcceptsSingleUse(t *testing.T) {
	lam := term.NewLam("x", term.NewNum(), term.NewVar(0), false)
	if !IsAffine(lam, nil) {
		t.Fatalf("λx. x must be affine")
	}
}

func TestIsTerminatingRejectsSelfReference(t *testing.T) {
	defs := map[string]*term.Term{"loop": term.NewRef("loop", false)}
	if IsTerminating(term.NewRef("loop", false), defs) {
		t.Fatalf("a reference recurring into itself must not be terminating")
	}
}

func TestIsTerminatingAcceptsPureLambda(t *testing.T) {
	lam := term.NewLam("x", term.NewTyp(), term.NewVar(0), false)
	if !IsTerminating(lam, nil) {
		t.Fatalf("a pure lambda with no references must be terminating")
	}
}

package check

import (
	"testing"

	"kindkernel/internal/equality"
	"kindkernel/internal/term"
)

func TestIdentityApplicationChecksAtType(t *testing.T) {
	sess := NewSession(nil, nil, nil)
	id := term.NewLam("x", term.NewTyp(), term.NewVar(0), false)
	app := term.NewApp(id, term.NewTyp(), false)

	typ, err := sess.Infer(Ctx{}, app, term.NewTyp(), false)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if typ.Kind != term.Typ {
		t.Fatalf("expected Typ, got %s", typ.Kind)
	}
}

func TestDependentApplyChecksAtNum(t *testing.T) {
	defs := map[string]*term.Term{
		"id": term.NewLam("A", term.NewTyp(), term.NewLam("x", term.NewVar(0), term.NewVar(0), false), true),
	}
	sess := NewSession(defs, nil, nil)
	applied := term.NewApp(
		term.NewApp(term.NewRef("id", false), term.NewNum(), true),
		term.NewVal(5),
		false,
	)

	typ, err := sess.Infer(Ctx{}, applied, term.NewNum(), false)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	eq, err := equality.Equal(sess.rsess, typ, term.NewNum())
	if err != nil || !eq {
		t.Fatalf("expected checked type equal to Num, got kind=%s eq=%v err=%v", typ.Kind, eq, err)
	}
}

func TestHoleInferenceSolvesBothOccurrences(t *testing.T) {
	sess := NewSession(nil, nil, nil)
	holeType := term.NewAll("x", term.NewHol("A"), term.NewHol("A"), false)
	lam := term.NewLam("x", nil, term.NewVar(0), false)
	annotated := term.NewAnn(holeType, lam, false)
	expected := term.NewAll("x", term.NewNum(), term.NewNum(), false)

	if _, err := sess.Infer(Ctx{}, annotated, expected, false); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	solved, _, ok := sess.Holes.Lookup("A")
	if !ok || solved == nil {
		t.Fatalf("hole A was not solved")
	}
	eq, err := equality.Equal(sess.rsess, solved, term.NewNum())
	if err != nil || !eq {
		t.Fatalf("expected hole A solved to Num, got kind=%s err=%v", solved.Kind, err)
	}
}

func TestLambdaWithoutAnnotationOrExpectedFails(t *testing.T) {
	sess := NewSession(nil, nil, nil)
	lam := term.NewLam("x", nil, term.NewVar(0), false)

	if _, err := sess.Infer(Ctx{}, lam, nil, false); err == nil {
		t.Fatalf("expected an error for an unannotated lambda with no expected type")
	}
}

func TestErasedVariableRejectedInRelevantPosition(t *testing.T) {
	sess := NewSession(nil, nil, nil)
	// λ(erased x:Type). x used in a relevant (non-erased) position.
	lam := term.NewLam("x", term.NewTyp(), term.NewVar(0), true)

	if _, err := sess.Infer(Ctx{}, lam, nil, false); err == nil {
		t.Fatalf("expected an error using an erased variable in a relevant position")
	}
}

func TestRecursiveReferenceRejected(t *testing.T) {
	defs := map[string]*term.Term{
		"loop": term.NewRef("loop", false),
	}
	sess := NewSession(defs, nil, nil)

	if _, err := sess.TypeCheck("loop", nil); err == nil {
		t.Fatalf("expected an error checking a reference that recurses through itself")
	}
}

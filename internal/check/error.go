package check

import (
	"fmt"

	"kindkernel/internal/diag"
	"kindkernel/internal/source"
	"kindkernel/internal/term"
)

// Error is a thrown type error: it carries the offending term and the
// context it was checked in so a caller can render a full diagnostic
// (span, a rendering of the term, and the surrounding context) without
// internal/check depending on internal/diagfmt.
type Error struct {
	Code    diag.Code
	Message string
	Term    *term.Term
	Ctx     Ctx
	Span    source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

func errAt(code diag.Code, msg string, t *term.Term, ctx Ctx) error {
	return &Error{Code: code, Message: msg, Term: t, Ctx: ctx, Span: t.Span}
}

package diag

import "kindkernel/internal/source"

// Note provides auxiliary context for a diagnostic message, e.g. "bound
// here" or "hole registered here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic captures a single issue raised by the checker, reducer, or
// an analysis pass. Term/Context are free-form renderings (the checker
// supplies a term printer) rather than structured trees, since the kernel
// has no pretty-printer of its own (that lives with the external surface
// syntax tooling).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Term     string
	Context  string
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithTerm attaches the offending term and its context's rendering, as
// the structured error payload is required to carry.
func (d Diagnostic) WithTerm(term, context string) Diagnostic {
	d.Term = term
	d.Context = context
	return d
}

// Package check implements the kernel's bidirectional type checker:
// Session.Infer both infers a term's type and, when an expected type is
// supplied, checks it by definitional equality (internal/equality).
// Session also owns the hole registry (HoleRegistry), which implements
// reduce.HoleStore so the reducer and equality engine can read and
// assign metavariables without this package being imported by theirs.
package check

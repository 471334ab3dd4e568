// Package diag defines the diagnostic model shared by the type checker, the
// reducer, and the linearity/recursion analyses.
//
// # Purpose
//
//   - Provide deterministic data structures that capture the kernel's error
//     kinds: unbound variable, erased-in-relevant-position, erasure mismatch,
//     non-function application, missing lambda annotation, non-Type forall,
//     non-numeric if-condition, new/use of non-self, unknown reference, type
//     mismatch, unknown primitive operator, and unsolved hole.
//   - Offer light-weight utilities (Reporter, Bag) that let the checker and
//     reducer emit diagnostics without coupling to a concrete sink.
//
// # Scope
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt. It does not itself decide what is an error versus a
// warning versus an informational hole report — callers pick the Severity.
//
// # Data model
//
// Diagnostic carries Severity, Code, Message, the Primary source.Span, and
// optionally the offending Term and its Context as free-form strings (the
// kernel has no pretty-printer of its own; callers supply their own term
// renderer when building a Diagnostic). Notes attach secondary spans/messages,
// e.g. where a hole was first registered.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage: construct a
// ReportBuilder via NewReportBuilder (or ReportError/ReportWarning/ReportInfo)
// and chain WithNote/WithTerm before calling Emit. diag.BagReporter collects
// into a *Bag, which supports sorting, deduplication, filtering.
//
// # Hole diagnostics
//
// Unsolved holes are collected during a check and reported only after the
// top-level definition finishes checking; anonymous holes (names beginning
// with "_") are never reported even if unsolved. See internal/check's hole
// registry.
//
// # Log sink
//
// LogSink and LogRecord give the reducer's Log term and the checker's
// optional message print a single structured destination instead of ad hoc
// string concatenation.
package diag

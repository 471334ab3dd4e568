// Package graphrt is the graph reduction runtime: a flat, word-addressed
// memory of small fixed-shape nodes (VAR, LAM, APP, REF, VAL, OP1, OP2,
// ITE, plus inert TYP/NUM/HOL/ALL/SLF placeholders kept for round-trip
// fidelity), driven by a lazy, spine-walking reducer that performs beta
// by mutating a lambda's own variable cell in place.
//
// A reference is never shared: expanding a REF node copies that
// definition's compiled template into the live memory and relocates its
// internal pointers by the copy's base address, so every expansion owns
// a fresh set of variable cells. This trades cross-call memoization for
// a pointer scheme with no extra indirection node and no tag stored in
// memory (the tag always travels with the Ptr that references a node).
package graphrt

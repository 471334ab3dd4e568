// Package equality implements definitional equality up to δ/β/ι/ν
// reduction, alpha-equivalence, and hole unification. Equal is the entry
// point: both sides are erased once, then an obligation tree is
// evaluated recursively, descending under binders and resolving holes by
// first-order pattern assignment through a reduce.HoleStore.
package equality

// Package reduce implements normalization by evaluation over the kernel's
// term algebra: unquote interprets a de-Bruijn term into a HOAS Value
// (binders become host closures over an environment), quote converts a
// Value back, and WeakHead/Normalize compose the two with configurable
// reduction classes (β/δ/ν/ι/hole substitution). It also provides Erase,
// the computational-irrelevance pass used by both the runtimes and the
// equality engine.
package reduce

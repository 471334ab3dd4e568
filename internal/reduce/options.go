package reduce

// Options gates each reduction class so a caller can disable a class
// independently (e.g. the equality engine's no-delta pass).
type Options struct {
	Beta  bool // App(Lam) application
	Delta bool // Ref unfolding
	Iota  bool // use(new(_)) collapse and Ite branch selection
	Nu    bool // Op1/Op2 numeric computation
	Hole  bool // substituting an assigned hole's value
}

// Full enables every reduction class; this is what Normalize and the
// runtimes use.
func Full() Options {
	return Options{Beta: true, Delta: true, Iota: true, Nu: true, Hole: true}
}

// NoDelta is Full with δ (reference unfolding) disabled: the equality
// engine's first pass per obligation.
func NoDelta() Options {
	o := Full()
	o.Delta = false
	return o
}

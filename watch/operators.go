package watch

// Map derives fn(src.Value()) and recomputes it on every emission of src.
func Map[T, R any](src Source[T], fn func(T) R, opts ...Option) (*Derived[R], error) {
	compute := func() R {
		return fn(src.Value())
	}
	return newDerived("watch.Map", compute, combineStep(compute), []attacher{attachTo(src)}, opts)
}

// Where starts with src's current value, whether or not keep accepts it,
// and afterwards only adopts values keep returns true for.
func Where[T any](src Source[T], keep func(T) bool, opts ...Option) (*Derived[T], error) {
	step := func() (T, bool) {
		next := src.Value()
		return next, keep(next)
	}
	return newDerived("watch.Where", src.Value, step, []attacher{attachTo(src)}, opts)
}

// Distinct forwards src but drops a value equal to the last one it
// adopted. Use WithEqual to compare by something other than DeepEqual.
func Distinct[T any](src Source[T], opts ...Option) (*Derived[T], error) {
	step := func() (T, bool) {
		return src.Value(), true
	}
	d, err := newDerived("watch.Distinct", src.Value, step, []attacher{attachTo(src)}, distinctOptions(opts))
	if err != nil {
		return nil, err
	}
	d.fixedPolicy = true
	return d, nil
}

// distinctOptions drops WithAlwaysNotify, which would defeat the operator.
// Derived.AlwaysNotify is likewise ignored on the result.
func distinctOptions(opts []Option) []Option {
	out := make([]Option, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, func(c *config) { c.alwaysNotify = false })
}

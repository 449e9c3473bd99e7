package watch

import (
	"github.com/pkg/errors"
)

// Derived is a read-only value computed from one or more sources. It is
// produced by the CombineN family, CombineAll, Map, Where and Distinct.
//
// A Derived node may be the source of another one. Cycles between derived
// nodes are not detected and must be avoided by the caller.
type Derived[T any] struct {
	state *Value[T]

	attaching   bool
	fixedPolicy bool
	step        func() (T, bool)
}

// attacher subscribes a trigger to one source and returns the matching
// unsubscribe.
type attacher func(trigger func()) (detach func(), err error)

func attachTo[T any](src Source[T]) attacher {
	return func(trigger func()) (func(), error) {
		l := Listen(func(T) { trigger() })
		if err := src.Subscribe(l); err != nil {
			return nil, err
		}
		return func() { src.Unsubscribe(l) }, nil
	}
}

// newDerived evaluates initial, then attaches to every source. Each source
// emission runs step; its value is adopted when step reports true.
func newDerived[T any](op string, initial func() T, step func() (T, bool), sources []attacher, opts []Option) (*Derived[T], error) {
	if len(sources) == 0 {
		return nil, ErrEmptySourceList
	}
	cfg := newConfig(opts)
	eq, err := equalFrom[T](cfg)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	var first T
	if err := guard(ReporterFunc(func(*Error) {}), op, KindCombiner, func() {
		first = initial()
	}); err != nil {
		return nil, errors.Wrap(err, "initial value")
	}

	d := &Derived[T]{
		state: newValue(op, first, eq, cfg),
		step:  step,
	}

	d.attaching = true
	defer func() { d.attaching = false }()
	for i, attach := range sources {
		detach, err := attach(d.recompute)
		if err != nil {
			d.state.Dispose()
			return nil, errors.Wrapf(err, "%s: source %d", op, i)
		}
		d.state.onDispose(detach)
	}
	return d, nil
}

func (d *Derived[T]) recompute() {
	if d.attaching || d.state.emitter.disposed {
		return
	}
	var (
		next  T
		adopt bool
	)
	if err := guard(d.state.emitter.reporter, d.state.emitter.op, KindCombiner, func() {
		next, adopt = d.step()
	}); err != nil {
		return
	}
	if adopt {
		d.state.Set(next)
	}
}

func (d *Derived[T]) Value() T {
	return d.state.Value()
}

func (d *Derived[T]) Subscribe(l *Listener[T]) error {
	return d.state.Subscribe(l)
}

func (d *Derived[T]) Unsubscribe(l *Listener[T]) {
	d.state.Unsubscribe(l)
}

// Dispose unsubscribes from every source. The sources stay live.
func (d *Derived[T]) Dispose() {
	d.state.Dispose()
}

func (d *Derived[T]) Disposed() bool {
	return d.state.Disposed()
}

func (d *Derived[T]) ReplayCache() []T {
	return d.state.ReplayCache()
}

func (d *Derived[T]) SubscriberCount() int {
	return d.state.SubscriberCount()
}

// AlwaysNotify toggles bypassing change detection. Nodes built by Distinct
// keep their change detection and ignore it.
func (d *Derived[T]) AlwaysNotify(enabled bool) {
	if d.fixedPolicy {
		return
	}
	d.state.AlwaysNotify(enabled)
}

func (d *Derived[T]) Refresh() {
	d.state.Refresh()
}

func combineStep[T any](compute func() T) func() (T, bool) {
	return func() (T, bool) {
		return compute(), true
	}
}

// CombineAll derives a value from any number of sources of one type. fn
// receives the current value of every source, in order.
func CombineAll[T, R any](sources []Source[T], fn func([]T) R, opts ...Option) (*Derived[R], error) {
	compute := func() R {
		vals := make([]T, len(sources))
		for i, src := range sources {
			vals[i] = src.Value()
		}
		return fn(vals)
	}
	attachers := make([]attacher, len(sources))
	for i, src := range sources {
		attachers[i] = attachTo(src)
	}
	return newDerived("watch.CombineAll", compute, combineStep(compute), attachers, opts)
}

// Must panics if err is non nil. It keeps operator chains on one line:
//
//	evens := watch.Must(watch.Where(watch.Must(watch.Map(count, double)), even))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

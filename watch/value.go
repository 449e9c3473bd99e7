package watch

// Value is a stateful value: an Emitter that replays its current value to
// every new subscriber and only notifies when an assignment changes it.
type Value[T any] struct {
	emitter *Emitter[T]

	value        T
	equal        func(old, new T) bool
	alwaysNotify bool

	detach []func()
}

// NewValue creates a Value holding initial. Subscribers observe initial
// immediately on Subscribe.
//
// NewValue panics when a WithEqual comparator is not a func(old, new T) bool;
// that is a programming error with nothing to recover. Derived constructors
// return ErrComparatorType instead.
func NewValue[T any](initial T, opts ...Option) *Value[T] {
	cfg := newConfig(opts)
	eq, err := equalFrom[T](cfg)
	if err != nil {
		panic(err)
	}
	return newValue("watch.Value", initial, eq, cfg)
}

func newValue[T any](op string, initial T, eq func(old, new T) bool, cfg config) *Value[T] {
	v := &Value[T]{
		emitter:      newEmitter[T](op, 1, cfg.reporter),
		value:        initial,
		equal:        eq,
		alwaysNotify: cfg.alwaysNotify,
	}
	v.emitter.record(initial)
	return v
}

func (v *Value[T]) Value() T {
	return v.value
}

// Set assigns next and notifies subscribers if it differs from the
// current value under the change detection policy.
func (v *Value[T]) Set(next T) {
	if v.emitter.disposed {
		return
	}
	if !v.alwaysNotify && v.same(v.value, next) {
		return
	}
	v.value = next
	v.emitter.Emit(next)
}

// Emit is Set.
func (v *Value[T]) Emit(next T) {
	v.Set(next)
}

// Update sets the result of fn applied to the current value.
func (v *Value[T]) Update(fn func(T) T) {
	v.Set(fn(v.value))
}

// AlwaysNotify toggles bypassing change detection.
func (v *Value[T]) AlwaysNotify(enabled bool) {
	v.alwaysNotify = enabled
}

// Refresh notifies subscribers with the current value once, whether or
// not anything changed.
func (v *Value[T]) Refresh() {
	if v.emitter.disposed {
		return
	}
	v.emitter.Emit(v.value)
}

// Subscribe registers l; it is called with the current value before
// Subscribe returns.
func (v *Value[T]) Subscribe(l *Listener[T]) error {
	return v.emitter.Subscribe(l)
}

func (v *Value[T]) Unsubscribe(l *Listener[T]) {
	v.emitter.Unsubscribe(l)
}

// ReplayCache holds exactly the current value until the Value is disposed.
func (v *Value[T]) ReplayCache() []T {
	return v.emitter.ReplayCache()
}

func (v *Value[T]) SubscriberCount() int {
	return v.emitter.SubscriberCount()
}

func (v *Value[T]) Disposed() bool {
	return v.emitter.Disposed()
}

// Dispose detaches from any upstream nodes and drops subscribers.
func (v *Value[T]) Dispose() {
	if v.emitter.disposed {
		return
	}
	detach := v.detach
	v.detach = nil
	for _, fn := range detach {
		fn()
	}
	v.emitter.Dispose()
}

func (v *Value[T]) onDispose(fn func()) {
	v.detach = append(v.detach, fn)
}

func (v *Value[T]) same(old, next T) bool {
	if v.equal == nil {
		return DeepEqual(old, next)
	}
	var same bool
	if err := guard(v.emitter.reporter, v.emitter.op, KindComparator, func() {
		same = v.equal(old, next)
	}); err != nil {
		return DeepEqual(old, next)
	}
	return same
}

// Toggle flips a boolean value.
func Toggle(v *Value[bool]) {
	v.Set(!v.value)
}

// Effect subscribes fn to src and returns a stop function. Sources that
// replay deliver their buffered values to fn before Effect returns.
func Effect[T any](src Emittable[T], fn func(T)) (stop func(), err error) {
	l := Listen(fn)
	if err := src.Subscribe(l); err != nil {
		return nil, err
	}
	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		src.Unsubscribe(l)
	}, nil
}

package watch

import (
	"github.com/pkg/errors"

	mapset "github.com/deckarep/golang-set/v2"
)

// Listener is a subscriber callback. The pointer is its identity, so the
// same *Listener subscribed twice is only registered once and Unsubscribe
// removes exactly that registration.
type Listener[T any] struct {
	fn func(T)
}

// Listen wraps fn in a new Listener.
func Listen[T any](fn func(T)) *Listener[T] {
	return &Listener[T]{fn: fn}
}

// Emittable is anything that can be subscribed to and disposed.
type Emittable[T any] interface {
	Subscribe(l *Listener[T]) error
	Unsubscribe(l *Listener[T])
	Dispose()
}

// Valued exposes a current value.
type Valued[T any] interface {
	Value() T
}

// Source is what derived nodes read from and listen to.
type Source[T any] interface {
	Emittable[T]
	Valued[T]
}

// registration is one Subscribe of a listener. Subscribing again after an
// Unsubscribe creates a new registration, so a dispatch already under way
// never reaches the listener through the old one.
type registration[T any] struct {
	l *Listener[T]
}

// Emitter is the publish/subscribe primitive. It is not safe for
// concurrent use; callers on several goroutines must serialize access.
type Emitter[T any] struct {
	op       string
	reporter Reporter

	members    mapset.Set[*registration[T]]
	byListener map[*Listener[T]]*registration[T]
	order      []*registration[T]

	capacity int
	replay   []T
	disposed bool
}

func NewEmitter[T any](opts ...Option) *Emitter[T] {
	cfg := newConfig(opts)
	return newEmitter[T]("watch.Emitter", cfg.replay, cfg.reporter)
}

func newEmitter[T any](op string, capacity int, reporter Reporter) *Emitter[T] {
	return &Emitter[T]{
		op:       op,
		reporter: reporter,
		members:    mapset.NewThreadUnsafeSet[*registration[T]](),
		byListener: map[*Listener[T]]*registration[T]{},
		capacity:   capacity,
	}
}

// Subscribe registers l and, before returning, calls it with every
// buffered value, oldest first.
func (e *Emitter[T]) Subscribe(l *Listener[T]) error {
	if e.disposed {
		return ErrDisposed
	}
	if l == nil || l.fn == nil {
		return errors.New("watch: nil listener")
	}
	if _, ok := e.byListener[l]; ok {
		return nil
	}
	reg := &registration[T]{l: l}
	e.members.Add(reg)
	e.byListener[l] = reg
	e.order = append(e.order, reg)

	if len(e.replay) == 0 {
		return nil
	}
	buffered := e.ReplayCache()
	for _, v := range buffered {
		if !e.members.Contains(reg) {
			break
		}
		e.invoke(l, v)
	}
	return nil
}

func (e *Emitter[T]) Unsubscribe(l *Listener[T]) {
	if e.disposed || l == nil {
		return
	}
	reg, ok := e.byListener[l]
	if !ok {
		return
	}
	delete(e.byListener, l)
	e.members.Remove(reg)
	for i, sub := range e.order {
		if sub == reg {
			e.order = append(e.order[:i:i], e.order[i+1:]...)
			break
		}
	}
}

// Emit records v in the replay buffer and delivers it to the listeners
// registered when Emit was called and still registered by the same
// Subscribe when their turn comes. A panicking listener is reported and
// does not stop delivery to the others.
func (e *Emitter[T]) Emit(v T) {
	if e.disposed {
		return
	}
	e.record(v)

	if len(e.order) == 0 {
		return
	}
	snapshot := make([]*registration[T], len(e.order))
	copy(snapshot, e.order)
	for _, reg := range snapshot {
		// removed, or removed and re-added, while dispatching
		if !e.members.Contains(reg) {
			continue
		}
		e.invoke(reg.l, v)
	}
}

func (e *Emitter[T]) record(v T) {
	if e.capacity <= 0 {
		return
	}
	if len(e.replay) < e.capacity {
		e.replay = append(e.replay, v)
		return
	}
	copy(e.replay, e.replay[1:])
	e.replay[len(e.replay)-1] = v
}

func (e *Emitter[T]) invoke(l *Listener[T], v T) {
	guard(e.reporter, e.op, KindSubscriber, func() {
		l.fn(v)
	})
}

// Dispose drops every listener and the replay buffer. Calling it again
// does nothing.
func (e *Emitter[T]) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.members.Clear()
	clear(e.byListener)
	e.order = nil
	e.replay = nil
}

func (e *Emitter[T]) Disposed() bool {
	return e.disposed
}

// ReplayCache returns a copy of the replay buffer, oldest first.
func (e *Emitter[T]) ReplayCache() []T {
	out := make([]T, len(e.replay))
	copy(out, e.replay)
	return out
}

func (e *Emitter[T]) SubscriberCount() int {
	return e.members.Cardinality()
}

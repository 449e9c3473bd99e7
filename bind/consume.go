package bind

import (
	"github.com/delaneyj/watchable/watch"
)

// Consumer runs a side effect for each emission of a source while leaving
// its child view alone.
type Consumer[T, V any] struct {
	src      watch.Emittable[T]
	effect   func(T)
	child    V
	reporter watch.Reporter

	listener  *watch.Listener[T]
	attaching bool
	torn      bool
}

// ConsumeOption configures a Consumer.
type ConsumeOption[T, V any] func(*Consumer[T, V])

// WithReporter sends side effect panics to r instead of the watch default.
func WithReporter[T, V any](r watch.Reporter) ConsumeOption[T, V] {
	return func(c *Consumer[T, V]) {
		c.reporter = r
	}
}

// Consume binds effect to src. Values a source replays on subscription
// are not passed to effect; only emissions after Consume returns are.
func Consume[T, V any](src watch.Emittable[T], effect func(T), child V, opts ...ConsumeOption[T, V]) (*Consumer[T, V], error) {
	c := &Consumer[T, V]{
		src:    src,
		effect: effect,
		child:  child,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.listener = watch.Listen(c.run)
	c.attaching = true
	err := src.Subscribe(c.listener)
	c.attaching = false
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Consumer[T, V]) run(v T) {
	if c.attaching || c.torn {
		return
	}
	watch.Protect(c.reporter, "bind.Consume", watch.KindSideEffect, func() {
		c.effect(v)
	})
}

func (c *Consumer[T, V]) Child() V {
	return c.child
}

func (c *Consumer[T, V]) Teardown() {
	if c.torn {
		return
	}
	c.torn = true
	c.src.Unsubscribe(c.listener)
}

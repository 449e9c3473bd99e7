// Package bind connects watch nodes to a view layer. It knows nothing
// about widgets: a view is whatever the render function returns.
package bind

import (
	"github.com/delaneyj/watchable/watch"
)

// RenderOption configures a View binding.
type RenderOption[T, V any] func(*View[T, V])

// WithShouldRebuild gates re-rendering. The cached last value advances on
// every emission whatever the predicate says.
func WithShouldRebuild[T, V any](fn func(prev, curr T) bool) RenderOption[T, V] {
	return func(v *View[T, V]) {
		v.shouldRebuild = fn
	}
}

// OnRebuild is called with each view produced after the initial render.
func OnRebuild[T, V any](fn func(V)) RenderOption[T, V] {
	return func(v *View[T, V]) {
		v.onRebuild = fn
	}
}

// View renders a Source and re-renders it as the source changes.
type View[T, V any] struct {
	src           watch.Source[T]
	render        func(T) V
	shouldRebuild func(prev, curr T) bool
	onRebuild     func(V)

	listener  *watch.Listener[T]
	attaching bool
	torn      bool

	last    T
	current V
	builds  int
}

// Render builds the initial view from src.Value() and keeps it current.
func Render[T, V any](src watch.Source[T], render func(T) V, opts ...RenderOption[T, V]) (*View[T, V], error) {
	v := &View[T, V]{
		src:    src,
		render: render,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.last = src.Value()
	v.current = render(v.last)
	v.builds = 1

	v.listener = watch.Listen(v.changed)
	v.attaching = true
	err := src.Subscribe(v.listener)
	v.attaching = false
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *View[T, V]) changed(next T) {
	if v.attaching || v.torn {
		return
	}
	prev := v.last
	v.last = next
	if v.shouldRebuild != nil && !v.shouldRebuild(prev, next) {
		return
	}
	v.current = v.render(next)
	v.builds++
	if v.onRebuild != nil {
		v.onRebuild(v.current)
	}
}

// Current is the most recently rendered view.
func (v *View[T, V]) Current() V {
	return v.current
}

// Last is the newest value seen, rendered or not.
func (v *View[T, V]) Last() T {
	return v.last
}

// Builds counts renders including the initial one.
func (v *View[T, V]) Builds() int {
	return v.builds
}

func (v *View[T, V]) Teardown() {
	if v.torn {
		return
	}
	v.torn = true
	v.src.Unsubscribe(v.listener)
}

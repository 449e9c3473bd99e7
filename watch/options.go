package watch

import (
	"reflect"

	"github.com/pkg/errors"
)

type config struct {
	replay       int
	reporter     Reporter
	equal        any
	alwaysNotify bool
}

// Option configures an Emitter, Value or Derived node.
type Option func(*config)

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithReplay sets how many past emissions an Emitter replays to new
// subscribers. Values and derived nodes always replay exactly one.
func WithReplay(k int) Option {
	return func(c *config) {
		if k < 0 {
			k = 0
		}
		c.replay = k
	}
}

// WithReporter routes recovered errors of the node to r instead of the
// process default.
func WithReporter(r Reporter) Option {
	return func(c *config) {
		c.reporter = r
	}
}

// WithEqual replaces the default change detection. eq returns true when
// old and new should be treated as the same value, suppressing the
// notification.
func WithEqual[T any](eq func(old, new T) bool) Option {
	return func(c *config) {
		c.equal = eq
	}
}

// WithAlwaysNotify makes every assignment notify, equal or not.
func WithAlwaysNotify() Option {
	return func(c *config) {
		c.alwaysNotify = true
	}
}

func equalFrom[T any](cfg config) (func(old, new T) bool, error) {
	if cfg.equal == nil {
		return nil, nil
	}
	eq, ok := cfg.equal.(func(old, new T) bool)
	if !ok {
		return nil, errors.Wrapf(ErrComparatorType, "%T for value type %s", cfg.equal, reflect.TypeOf((*T)(nil)).Elem())
	}
	return eq, nil
}

// DeepEqual is the default change detection policy: structural equality,
// so a freshly built slice or map with the same contents is not a change.
func DeepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

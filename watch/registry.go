package watch

import (
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

type registryEntry struct {
	key   string
	value any
	// dispose and disposed are the entry's methods, typed away from T.
	dispose  func()
	disposed func() bool
}

// Registry shares Values between parts of an application under names the
// application picks. Nothing is shared implicitly: two NewValue(0) calls
// are always two values, and only Shared with the same key aliases.
type Registry struct {
	entries map[uint64]registryEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: map[uint64]registryEntry{}}
}

func registryKey(key string) uint64 {
	return xxhash.Sum64String(key)
}

// Shared returns the Value registered under key, creating it from initial
// and opts the first time. Options are ignored when the value exists.
func Shared[T any](r *Registry, key string, initial T, opts ...Option) (*Value[T], error) {
	id := registryKey(key)
	if entry, ok := r.entries[id]; ok {
		if entry.key != key {
			return nil, errors.Errorf("watch: registry key %q collides with %q", key, entry.key)
		}
		v, ok := entry.value.(*Value[T])
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "key %q holds %T", key, entry.value)
		}
		if !v.Disposed() {
			return v, nil
		}
	}

	cfg := newConfig(opts)
	eq, err := equalFrom[T](cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "key %q", key)
	}
	v := newValue("watch.Value", initial, eq, cfg)
	r.entries[id] = registryEntry{key: key, value: v, dispose: v.Dispose, disposed: v.Disposed}
	return v, nil
}

// Lookup reports whether key currently holds a live value. A value
// disposed directly rather than through Release no longer counts.
func (r *Registry) Lookup(key string) bool {
	entry, ok := r.entries[registryKey(key)]
	return ok && entry.key == key && !entry.disposed()
}

// Release disposes and forgets the value registered under key.
func (r *Registry) Release(key string) {
	id := registryKey(key)
	entry, ok := r.entries[id]
	if !ok || entry.key != key {
		return
	}
	delete(r.entries, id)
	entry.dispose()
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Dispose releases every entry.
func (r *Registry) Dispose() {
	entries := r.entries
	r.entries = map[uint64]registryEntry{}
	for _, entry := range entries {
		entry.dispose()
	}
}

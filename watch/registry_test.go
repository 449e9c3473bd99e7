package watch_test

import (
	"testing"

	"github.com/delaneyj/watchable/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySharesByKey(t *testing.T) {
	r := watch.NewRegistry()

	a, err := watch.Shared(r, "counter", 0)
	require.NoError(t, err)
	b, err := watch.Shared(r, "counter", 99)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 0, b.Value(), "the initial value of a later call is ignored")

	a.Set(5)
	assert.Equal(t, 5, b.Value())
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Lookup("counter"))
	assert.False(t, r.Lookup("other"))
}

func TestRegistryNeverAliasesByValue(t *testing.T) {
	r := watch.NewRegistry()
	left := watch.Must(watch.Shared(r, "left", 0))
	right := watch.Must(watch.Shared(r, "right", 0))
	assert.NotSame(t, left, right)

	left.Set(1)
	assert.Equal(t, 0, right.Value())

	plainA := watch.NewValue(0)
	plainB := watch.NewValue(0)
	assert.NotSame(t, plainA, plainB)
}

func TestRegistryTypeMismatch(t *testing.T) {
	r := watch.NewRegistry()
	_, err := watch.Shared(r, "flag", true)
	require.NoError(t, err)

	_, err = watch.Shared(r, "flag", "yes")
	assert.ErrorIs(t, err, watch.ErrTypeMismatch)
}

func TestRegistryRelease(t *testing.T) {
	r := watch.NewRegistry()
	v := watch.Must(watch.Shared(r, "name", "x"))

	r.Release("name")
	r.Release("name")
	r.Release("never-registered")
	assert.True(t, v.Disposed())
	assert.Equal(t, 0, r.Len())

	fresh := watch.Must(watch.Shared(r, "name", "y"))
	assert.NotSame(t, v, fresh)
	assert.Equal(t, "y", fresh.Value())
}

func TestRegistryReplacesDisposedEntry(t *testing.T) {
	r := watch.NewRegistry()
	v := watch.Must(watch.Shared(r, "n", 1))
	v.Dispose()

	again := watch.Must(watch.Shared(r, "n", 2))
	assert.NotSame(t, v, again)
	assert.Equal(t, 2, again.Value())
	assert.Equal(t, 1, r.Len())
}

func TestRegistryLookupSkipsDisposedValue(t *testing.T) {
	r := watch.NewRegistry()
	v := watch.Must(watch.Shared(r, "n", 1))
	require.True(t, r.Lookup("n"))

	v.Dispose()
	assert.False(t, r.Lookup("n"))

	watch.Must(watch.Shared(r, "n", 2))
	assert.True(t, r.Lookup("n"))
}

func TestRegistrySharedRejectsMismatchedComparator(t *testing.T) {
	r := watch.NewRegistry()
	v, err := watch.Shared(r, "n", 1, watch.WithEqual(func(a, b string) bool { return a == b }))
	assert.ErrorIs(t, err, watch.ErrComparatorType)
	assert.Nil(t, v)
	assert.False(t, r.Lookup("n"))
}

func TestRegistryDispose(t *testing.T) {
	r := watch.NewRegistry()
	a := watch.Must(watch.Shared(r, "a", 1))
	b := watch.Must(watch.Shared(r, "b", "b"))

	r.Dispose()
	assert.True(t, a.Disposed())
	assert.True(t, b.Disposed())
	assert.Equal(t, 0, r.Len())
}

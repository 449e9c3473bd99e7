package watch_test

import (
	"testing"

	"github.com/delaneyj/watchable/watch"
	"github.com/stretchr/testify/require"
)

// record subscribes a collector to src. Replayed values land in the slice
// too, so callers usually reset it after subscribing.
func record[T any](t *testing.T, src watch.Emittable[T]) *[]T {
	t.Helper()
	got := &[]T{}
	require.NoError(t, src.Subscribe(watch.Listen(func(v T) {
		*got = append(*got, v)
	})))
	return got
}

func double(x int) int {
	return x * 2
}

func sumTwo(a, b int) int {
	return a + b
}

func isEven(x int) bool {
	return x%2 == 0
}

package watch_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/delaneyj/watchable/watch"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine2(t *testing.T) {
	s1 := watch.NewValue(1)
	s2 := watch.NewValue(2)
	c, err := watch.Combine2(s1, s2, sumTwo)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Value())

	s1.Set(5)
	assert.Equal(t, 7, c.Value())

	s2.Set(10)
	assert.Equal(t, 15, c.Value())
}

func TestCombineMixedTypes(t *testing.T) {
	name := watch.NewValue("ada")
	age := watch.NewValue(36)
	loud := watch.NewValue(false)

	c, err := watch.Combine3(name, age, loud, func(n string, a int, l bool) string {
		s := fmt.Sprintf("%s (%d)", n, a)
		if l {
			s = strings.ToUpper(s)
		}
		return s
	})
	require.NoError(t, err)
	assert.Equal(t, "ada (36)", c.Value())

	loud.Set(true)
	assert.Equal(t, "ADA (36)", c.Value())
}

func TestCombineHigherArities(t *testing.T) {
	s := make([]*watch.Value[int], 6)
	for i := range s {
		s[i] = watch.NewValue(i + 1)
	}

	c4, err := watch.Combine4(s[0], s[1], s[2], s[3], func(a, b, c, d int) int {
		return a + b + c + d
	})
	require.NoError(t, err)
	c5, err := watch.Combine5(s[0], s[1], s[2], s[3], s[4], func(a, b, c, d, e int) int {
		return a + b + c + d + e
	})
	require.NoError(t, err)
	c6, err := watch.Combine6(s[0], s[1], s[2], s[3], s[4], s[5], func(a, b, c, d, e, f int) int {
		return a + b + c + d + e + f
	})
	require.NoError(t, err)

	assert.Equal(t, 10, c4.Value())
	assert.Equal(t, 15, c5.Value())
	assert.Equal(t, 21, c6.Value())

	s[5].Set(100)
	assert.Equal(t, 10, c4.Value())
	assert.Equal(t, 15, c5.Value())
	assert.Equal(t, 115, c6.Value())

	s[0].Set(0)
	assert.Equal(t, 9, c4.Value())
	assert.Equal(t, 14, c5.Value())
	assert.Equal(t, 114, c6.Value())
}

func TestCombineAll(t *testing.T) {
	sources := []watch.Source[int]{
		watch.NewValue(1),
		watch.NewValue(2),
		watch.NewValue(3),
	}
	total, err := watch.CombineAll(sources, func(vals []int) int {
		sum := 0
		for _, v := range vals {
			sum += v
		}
		return sum
	})
	require.NoError(t, err)
	assert.Equal(t, 6, total.Value())

	sources[1].(*watch.Value[int]).Set(20)
	assert.Equal(t, 24, total.Value())
}

func TestCombineAllRequiresSources(t *testing.T) {
	_, err := watch.CombineAll(nil, func(vals []int) int { return len(vals) })
	assert.ErrorIs(t, err, watch.ErrEmptySourceList)

	_, err = watch.CombineAll([]watch.Source[int]{}, func(vals []int) int { return len(vals) })
	assert.ErrorIs(t, err, watch.ErrEmptySourceList)
}

func TestCombineNotifiesOnlyOnChange(t *testing.T) {
	a := watch.NewValue(1)
	b := watch.NewValue(-1)
	c := watch.Must(watch.Combine2(a, b, sumTwo))
	got := record[int](t, c)
	assert.Equal(t, []int{0}, *got)

	// 2 + -2 is still 0
	a.Set(2)
	b.Set(-2)
	assert.Equal(t, []int{0, 1, 0}, *got)

	a.Set(2)
	assert.Equal(t, []int{0, 1, 0}, *got)
}

func TestCombineRecomputesFromCurrentValues(t *testing.T) {
	s1 := watch.NewValue(1)
	s2 := watch.NewValue(2)

	// Registered on s1 before the combiner, so it moves s2 before the
	// combiner hears about s1.
	require.NoError(t, s1.Subscribe(watch.Listen(func(v int) {
		if v == 5 {
			s2.Set(10)
		}
	})))

	c := watch.Must(watch.Combine2(s1, s2, sumTwo))
	got := record[int](t, c)

	s1.Set(5)
	assert.Equal(t, []int{3, 15}, *got, "the half updated 5+2 is never observed")
	assert.Equal(t, 15, c.Value())
}

func TestCombineInitialPanicFailsConstruction(t *testing.T) {
	s1 := watch.NewValue(1)
	s2 := watch.NewValue(0)

	c, err := watch.Combine2(s1, s2, func(a, b int) int {
		return a / b
	})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, watch.ErrCombinerFunction))

	var werr *watch.Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, watch.KindCombiner, werr.Kind)

	assert.Equal(t, 0, s1.SubscriberCount())
	assert.Equal(t, 0, s2.SubscriberCount())
}

func TestCombineLaterPanicKeepsLastGoodValue(t *testing.T) {
	rec := watch.NewRecorder(4)
	s1 := watch.NewValue(10)
	s2 := watch.NewValue(2)

	c, err := watch.Combine2(s1, s2, func(a, b int) int {
		return a / b
	}, watch.WithReporter(rec))
	require.NoError(t, err)
	got := record[int](t, c)

	s2.Set(0)
	assert.Equal(t, 5, c.Value())
	assert.Equal(t, []int{5}, *got)
	require.Equal(t, 1, rec.Len())
	assert.True(t, errors.Is(rec.Errors()[0], watch.ErrCombinerFunction))
	assert.Equal(t, "watch.Combine2", rec.Errors()[0].Op)

	s2.Set(5)
	assert.Equal(t, 2, c.Value())
	assert.Equal(t, []int{5, 2}, *got)
}

func TestCombineDispose(t *testing.T) {
	s1 := watch.NewValue(1)
	s2 := watch.NewValue(2)
	c := watch.Must(watch.Combine2(s1, s2, sumTwo))
	got := record[int](t, c)

	assert.Equal(t, 1, s1.SubscriberCount())
	assert.Equal(t, 1, s2.SubscriberCount())

	c.Dispose()
	assert.True(t, c.Disposed())
	assert.Equal(t, 0, s1.SubscriberCount())
	assert.Equal(t, 0, s2.SubscriberCount())
	assert.Equal(t, 0, c.SubscriberCount())

	assert.NotPanics(t, c.Dispose)

	// sources outlive the combiner
	assert.False(t, s1.Disposed())
	s1.Set(100)
	assert.Equal(t, 100, s1.Value())
	assert.Equal(t, 3, c.Value())
	assert.Equal(t, []int{3}, *got)

	assert.ErrorIs(t, c.Subscribe(watch.Listen(func(int) {})), watch.ErrDisposed)
}

func TestCombineWithDisposedSource(t *testing.T) {
	live := watch.NewValue(1)
	dead := watch.NewValue(2)
	dead.Dispose()

	c, err := watch.Combine2(live, dead, sumTwo)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, watch.ErrDisposed)
	assert.Equal(t, 0, live.SubscriberCount(), "partially attached listeners are removed")
}

func TestNestedCombiners(t *testing.T) {
	//     A   B
	//      \ /
	//       C   D
	//        \ /
	//         E
	a := watch.NewValue(1)
	b := watch.NewValue(2)
	d := watch.NewValue(10)
	c := watch.Must(watch.Combine2(a, b, sumTwo))
	e := watch.Must(watch.Combine2(c, d, func(c, d int) int {
		return c * d
	}))
	assert.Equal(t, 30, e.Value())

	a.Set(3)
	assert.Equal(t, 5, c.Value())
	assert.Equal(t, 50, e.Value())

	c.Dispose()
	a.Set(4)
	assert.Equal(t, 50, e.Value(), "a disposed upstream stops feeding its dependents")

	d.Set(1)
	assert.Equal(t, 5, e.Value())
}

func TestCombineProcessesEachSourceChange(t *testing.T) {
	a := watch.NewValue("a")
	b := watch.NewValue("b")
	joined := watch.Must(watch.Combine2(a, b, func(a, b string) string {
		return a + b
	}))
	got := record[string](t, joined)

	a.Set("x")
	b.Set("y")
	assert.Equal(t, []string{"ab", "xb", "xy"}, *got)
}

func TestCombineAlwaysNotifyAndRefresh(t *testing.T) {
	a := watch.NewValue(1)
	parity := watch.Must(watch.Map(a, isEven))
	got := record[bool](t, parity)
	*got = nil

	a.Set(3)
	assert.Empty(t, *got)

	parity.AlwaysNotify(true)
	a.Set(5)
	assert.Equal(t, []bool{false}, *got)

	parity.Refresh()
	assert.Equal(t, []bool{false, false}, *got)
	assert.Equal(t, []bool{false}, parity.ReplayCache())
}

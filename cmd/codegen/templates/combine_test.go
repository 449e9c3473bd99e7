package templates

import (
	"go/format"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixedStrings(t *testing.T) {
	assert.Equal(t, "", prefixedStrings("T", 0))
	assert.Equal(t, "T0", prefixedStrings("T", 1))
	assert.Equal(t, "T0, T1, T2", prefixedStrings("T", 3))
}

func TestCombineGenIsValidGo(t *testing.T) {
	src := CombineGen(DefaultArity)

	_, err := format.Source([]byte(src))
	require.NoError(t, err)

	for _, want := range []string{
		"func Combine2[T0, T1, R any](",
		"func Combine6[T0, T1, T2, T3, T4, T5, R any](",
		"fn func(T0, T1, T2) R,",
		"attachTo(src5),",
		`newDerived("watch.Combine4"`,
	} {
		assert.Contains(t, src, want)
	}
	assert.NotContains(t, src, "func Combine7[")
	assert.Equal(t, 5, strings.Count(src, "\nfunc Combine"))
}

func TestCombineGenBelowMinimum(t *testing.T) {
	src := CombineGen(1)
	assert.NotContains(t, src, "func Combine")
	assert.True(t, strings.HasPrefix(src, "// Code generated"))
}

func TestCombineGenMatchesCheckedInFile(t *testing.T) {
	formatted, err := format.Source([]byte(CombineGen(DefaultArity)))
	require.NoError(t, err)

	checkedIn, err := os.ReadFile("../../../watch/combine_gen.go")
	require.NoError(t, err)
	assert.Equal(t, string(checkedIn), string(formatted), "run go generate ./watch")
}

package templates

//go:generate qtc -file=combine.qtpl

import (
	"strconv"
	"strings"
)

const (
	// MinArity is the smallest CombineN generated; Map covers one source.
	MinArity = 2
	// DefaultArity matches the checked in watch/combine_gen.go.
	DefaultArity = 6
)

// prefixedStrings lists count type parameter names, e.g. "T0, T1, T2".
func prefixedStrings(prefix string, count int) string {
	names := make([]string, count)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return strings.Join(names, ", ")
}

// Package watch is a push based, synchronous value propagation core.
//
// An Emitter delivers values to Listeners. A Value is an Emitter that
// remembers its current value, replays it to every new subscriber and
// only notifies when an assignment changes it. Derived nodes (CombineN,
// CombineAll, Map, Where, Distinct) subscribe to sources and recompute
// from the current value of every source each time one of them emits.
//
//	a := watch.NewValue(1)
//	b := watch.NewValue(2)
//	sum := watch.Must(watch.Combine2(a, b, func(a, b int) int { return a + b }))
//	a.Set(5) // sum.Value() == 7
//
// Dispatch happens on the caller's stack before Set or Emit returns.
// Nothing here is safe for concurrent use; serialize access per graph.
//
// Panics raised by listeners, comparators and combiner functions are
// recovered and handed to a Reporter (see SetReporter and WithReporter)
// so one bad callback cannot take the rest of the graph down.
package watch

//go:generate go run ../cmd/codegen --out combine_gen.go

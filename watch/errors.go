package watch

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrDisposed is returned by Subscribe once a node has been disposed.
	ErrDisposed = errors.New("watch: node is disposed")
	// ErrEmptySourceList is returned when a combiner is built from zero sources.
	ErrEmptySourceList = errors.New("watch: combiner needs at least one source")
	// ErrTypeMismatch is returned by Shared when a key already holds a value of another type.
	ErrTypeMismatch = errors.New("watch: registry entry has a different type")
	// ErrComparatorType is returned when a WithEqual comparator was built for
	// another value type than the node it configures.
	ErrComparatorType = errors.New("watch: comparator does not match value type")

	ErrSubscriberCallback = errors.New("watch: subscriber callback failed")
	ErrComparator         = errors.New("watch: comparator failed")
	ErrCombinerFunction   = errors.New("watch: combiner function failed")
	ErrSideEffect         = errors.New("watch: side effect failed")
)

// Kind identifies where in the graph an error was raised.
type Kind int

const (
	KindUnknown Kind = iota
	KindSubscriber
	KindComparator
	KindCombiner
	KindSideEffect
)

func (k Kind) String() string {
	switch k {
	case KindSubscriber:
		return "subscriber"
	case KindComparator:
		return "comparator"
	case KindCombiner:
		return "combiner"
	case KindSideEffect:
		return "side-effect"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindSubscriber:
		return ErrSubscriberCallback
	case KindComparator:
		return ErrComparator
	case KindCombiner:
		return ErrCombinerFunction
	case KindSideEffect:
		return ErrSideEffect
	default:
		return nil
	}
}

// Error is a failure recovered from user code running inside the graph:
// a listener, a comparator, a combiner function or a bound side effect.
type Error struct {
	// Op names the node operation that was running, e.g. "watch.Combine2".
	Op string
	// Kind categorizes the failure.
	Kind Kind
	// Err is the underlying error. For panics that did not carry an error
	// it wraps the formatted panic value.
	Err error
	// Value is the raw recovered panic value, if any.
	Value any
	// StackTrace is captured at the point of recovery.
	StackTrace string
	// Timestamp is when the error was recovered.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match against the sentinel for the error's Kind, so
// errors.Is(err, ErrComparator) works without unwrapping by hand.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

func newPanicError(op string, kind Kind, r any) *Error {
	err, ok := r.(error)
	if !ok {
		err = errors.Errorf("panic: %v", r)
	}
	return &Error{
		Op:         op,
		Kind:       kind,
		Err:        err,
		Value:      r,
		StackTrace: captureStack(),
		Timestamp:  time.Now(),
	}
}

// guard runs fn and converts a panic into a reported *Error.
// It returns the error so callers can decide on a fallback.
func guard(rep Reporter, op string, kind Kind, fn func()) (err *Error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(op, kind, r)
			report(rep, err)
		}
	}()
	fn()
	return nil
}

// Protect runs fn and reports a panic from it as an *Error of kind. The
// reported error is returned; a clean run returns nil. A nil r uses the
// process default reporter.
func Protect(r Reporter, op string, kind Kind, fn func()) error {
	if err := guard(r, op, kind, fn); err != nil {
		return err
	}
	return nil
}

func captureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(4, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}

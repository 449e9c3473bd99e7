package watch

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Reporter observes errors recovered inside the graph. Reports are made
// synchronously from the goroutine that triggered the failing call.
type Reporter interface {
	Report(err *Error)
}

// ReporterFunc adapts a plain function to a Reporter.
type ReporterFunc func(err *Error)

func (f ReporterFunc) Report(err *Error) {
	f(err)
}

var (
	defaultReporter Reporter = &LogReporter{}
	reporterMu      sync.RWMutex
)

// SetReporter replaces the process wide reporter used by nodes that were
// not given one with WithReporter. Pass nil to restore the logging default.
func SetReporter(r Reporter) {
	reporterMu.Lock()
	defer reporterMu.Unlock()
	if r == nil {
		defaultReporter = &LogReporter{}
	} else {
		defaultReporter = r
	}
}

func getReporter() Reporter {
	reporterMu.RLock()
	defer reporterMu.RUnlock()
	return defaultReporter
}

func report(r Reporter, err *Error) {
	if err == nil {
		return
	}
	if r == nil {
		r = getReporter()
	}
	if r != nil {
		r.Report(err)
	}
}

// LogReporter writes reports through logrus.
type LogReporter struct {
	// Logger defaults to the logrus standard logger.
	Logger *logrus.Logger
	// Verbose adds the recovered stack trace.
	Verbose bool
}

func (l *LogReporter) Report(err *Error) {
	if err == nil {
		return
	}
	logger := l.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	entry := logger.WithFields(logrus.Fields{
		"op":   err.Op,
		"kind": err.Kind.String(),
	})
	if l.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	entry.Error(err.Err)
}

// Recorder keeps the most recent reports in a ring. Useful in tests and
// for hosts that poll for failures instead of reacting to them.
type Recorder struct {
	mu     sync.Mutex
	errors []*Error
	head   int
	count  int
}

// NewRecorder returns a Recorder holding at most size reports. A size
// below one is treated as one.
func NewRecorder(size int) *Recorder {
	if size < 1 {
		size = 1
	}
	return &Recorder{errors: make([]*Error, size)}
}

func (r *Recorder) Report(err *Error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors[r.head] = err
	r.head = (r.head + 1) % len(r.errors)
	if r.count < len(r.errors) {
		r.count++
	}
}

// Errors returns the recorded reports, oldest first.
func (r *Recorder) Errors() []*Error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return nil
	}
	size := len(r.errors)
	out := make([]*Error, r.count)
	start := (r.head - r.count + size) % size
	for i := 0; i < r.count; i++ {
		out[i] = r.errors[(start+i)%size]
	}
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Err folds the recorded reports into one error, or nil when there are none.
func (r *Recorder) Err() error {
	var merr *multierror.Error
	for _, e := range r.Errors() {
		merr = multierror.Append(merr, e)
	}
	return merr.ErrorOrNil()
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.errors {
		r.errors[i] = nil
	}
	r.head = 0
	r.count = 0
}

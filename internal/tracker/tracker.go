package tracker

import (
	"errors"

	"github.com/sleuth-go/sleuth/internal/knowledge"
	"github.com/sleuth-go/sleuth/internal/report"
	"github.com/sleuth-go/sleuth/internal/resolve"
)

// Usage errors. Tracking misuse is a programming error on the caller's
// side, reported immediately rather than degraded from.
var (
	// ErrAlreadyStarted is returned when Start is called on a running
	// tracker.
	ErrAlreadyStarted = errors.New("tracker: already started")

	// ErrNothingTracked is returned when a report is requested before
	// any load was observed.
	ErrNothingTracked = errors.New("tracker: no loads tracked; start the tracker before running your code")
)

// Tracker observes module loads on a FactoryLoader and keeps an ordered
// list of the observed names. Not safe for concurrent use.
type Tracker struct {
	loader  *resolve.FactoryLoader
	names   []string
	started bool
}

// New creates a Tracker over the given loader. The tracker is inert
// until Start is called.
func New(loader *resolve.FactoryLoader) *Tracker {
	return &Tracker{loader: loader}
}

// Start begins recording loads. Starting a running tracker is a usage
// error.
func (t *Tracker) Start() error {
	if t.started {
		return ErrAlreadyStarted
	}
	t.started = true
	t.loader.SetObserver(t.record)
	return nil
}

// Stop removes the observer and clears the tracked list.
func (t *Tracker) Stop() {
	if !t.started {
		return
	}
	t.loader.SetObserver(nil)
	t.started = false
	t.names = nil
}

// Started reports whether the tracker is currently recording.
func (t *Tracker) Started() bool {
	return t.started
}

// Names returns the tracked module names in load order. Duplicates are
// preserved; the registry deduplicates on insert.
func (t *Tracker) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// record appends a load, skipping standard-library and denylisted
// names.
func (t *Tracker) record(name string) {
	if name == "" || knowledge.IsStandardLibrary(name) {
		return
	}
	if _, deny := knowledge.DenyTracking[name]; deny {
		return
	}
	t.names = append(t.names, name)
}

// Report builds an environment report whose core package list is the
// tracked loads, with no optional packages. Requesting a report with
// nothing tracked is a usage error.
func (t *Tracker) Report(opts ...report.Option) (*report.Report, error) {
	if len(t.names) == 0 {
		return nil, ErrNothingTracked
	}
	opts = append(opts,
		report.WithCore(t.Names()),
		report.WithOptional([]string{}),
	)
	return report.New(opts...)
}

package tracker

import (
	"errors"
	"strings"
	"testing"

	"github.com/sleuth-go/sleuth/internal/report"
	"github.com/sleuth-go/sleuth/internal/resolve"
)

func newLoader(names ...string) *resolve.FactoryLoader {
	loader := resolve.NewFactoryLoader()
	for _, name := range names {
		n := name
		loader.Register(n, func() (resolve.Module, error) {
			return resolve.Handle{Name: n, Ver: "v1.0.0"}, nil
		})
	}
	return loader
}

// TestTrackerRecordsLoads tests that started trackers record loads in
// order, excluding standard-library names.
func TestTrackerRecordsLoads(t *testing.T) {
	t.Parallel()

	loader := newLoader("github.com/example/alpha", "fmt", "github.com/example/beta")
	tr := New(loader)
	if err := tr.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"github.com/example/alpha", "fmt", "github.com/example/beta"} {
		if _, err := loader.Load(name); err != nil {
			t.Fatalf("unexpected error loading %s: %v", name, err)
		}
	}

	got := tr.Names()
	want := []string{"github.com/example/alpha", "github.com/example/beta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, expected %q", i, got[i], want[i])
		}
	}
}

// TestTrackerStartTwice tests that a second Start is a usage error.
func TestTrackerStartTwice(t *testing.T) {
	t.Parallel()

	tr := New(newLoader())
	if err := tr.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tr.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("got %v, expected ErrAlreadyStarted", err)
	}
}

// TestTrackerStop tests that stopping clears state and detaches the
// observer.
func TestTrackerStop(t *testing.T) {
	t.Parallel()

	loader := newLoader("github.com/example/alpha")
	tr := New(loader)
	if err := tr.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := loader.Load("github.com/example/alpha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tr.Stop()

	if len(tr.Names()) != 0 {
		t.Error("expected the tracked list to be cleared")
	}
	if loader.Observed() {
		t.Error("expected the observer to be removed")
	}

	// A stopped tracker can start again.
	if err := tr.Start(); err != nil {
		t.Errorf("unexpected error restarting: %v", err)
	}
}

// TestTrackerReport tests report generation from tracked loads.
func TestTrackerReport(t *testing.T) {
	t.Parallel()

	t.Run("nothing tracked is a usage error", func(t *testing.T) {
		t.Parallel()
		tr := New(newLoader())
		if err := tr.Start(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := tr.Report(); !errors.Is(err, ErrNothingTracked) {
			t.Errorf("got %v, expected ErrNothingTracked", err)
		}
	})

	t.Run("tracked loads become the core list", func(t *testing.T) {
		t.Parallel()
		loader := newLoader("github.com/example/alpha")
		tr := New(loader)
		if err := tr.Start(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := loader.Load("github.com/example/alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rep, err := tr.Report(report.WithResolver(resolve.NewResolver(nil, loader)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(rep.Text(), "github.com/example/alpha : v1.0.0") {
			t.Errorf("missing tracked package in:\n%s", rep.Text())
		}
	})
}

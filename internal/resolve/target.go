package resolve

import (
	"errors"
	"fmt"
)

// Module is a live package handle. Embedding programs hand these to the
// resolver when a package is already "loaded" in-process; the resolver
// probes the handle for version indicators.
type Module interface {
	// ModuleName returns the canonical module name to report under.
	ModuleName() string
}

// Versioner is the preferred version indicator on a Module handle,
// probed before any reflective or table-driven lookup.
type Versioner interface {
	Version() string
}

// ErrInvalidTarget is returned when a resolution target is neither a
// package name nor a Module handle.
var ErrInvalidTarget = errors.New("resolve: target must be a package name or a Module handle")

// Target identifies a package to resolve: either by name or by a live
// handle. The zero Target is invalid.
type Target struct {
	name   string
	module Module
}

// ByName builds a Target from a package or module name.
func ByName(name string) Target {
	return Target{name: name}
}

// ByModule builds a Target from a live module handle.
func ByModule(m Module) Target {
	return Target{module: m}
}

// IsZero reports whether the target identifies nothing.
func (t Target) IsZero() bool {
	return t.name == "" && t.module == nil
}

// AsTarget converts a dynamically-typed value into a Target. Accepted
// types are string, Module, and Target; anything else is a usage error.
func AsTarget(v any) (Target, error) {
	switch x := v.(type) {
	case string:
		return ByName(x), nil
	case Module:
		return ByModule(x), nil
	case Target:
		return x, nil
	default:
		return Target{}, fmt.Errorf("%w: got %T", ErrInvalidTarget, v)
	}
}

// AsTargets normalizes a dynamically-typed package specification into a
// list of targets. nil yields an empty list; a single name or handle
// yields a one-element list; slices are converted element-wise. Any
// other shape is a usage error.
func AsTargets(v any) ([]Target, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []Target:
		return x, nil
	case []string:
		targets := make([]Target, 0, len(x))
		for _, name := range x {
			targets = append(targets, ByName(name))
		}
		return targets, nil
	case []Module:
		targets := make([]Target, 0, len(x))
		for _, m := range x {
			targets = append(targets, ByModule(m))
		}
		return targets, nil
	case []any:
		targets := make([]Target, 0, len(x))
		for _, elem := range x {
			t, err := AsTarget(elem)
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		}
		return targets, nil
	default:
		t, err := AsTarget(v)
		if err != nil {
			return nil, err
		}
		return []Target{t}, nil
	}
}

// Handle is a minimal Module implementation for programs that want to
// register a package under a fixed name and version.
type Handle struct {
	Name string
	Ver  string
}

// ModuleName returns the handle's name.
func (h Handle) ModuleName() string { return h.Name }

// Version returns the handle's version string.
func (h Handle) Version() string { return h.Ver }

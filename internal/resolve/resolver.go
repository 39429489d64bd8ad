package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/sleuth-go/sleuth/internal/knowledge"
)

// Sentinel version values. These are display strings, not errors:
// resolution failures for individual packages never abort a report.
const (
	// ModuleNotFound means the package could not be located at all.
	ModuleNotFound = "Module not found"

	// ModuleTrouble means a module was registered but its factory
	// failed or panicked while loading. The underlying cause is
	// swallowed; it is logged at debug level only.
	ModuleTrouble = "Trouble loading"

	// VersionNotFound means the module loaded but exposed no version
	// indicator the resolver knows about.
	VersionNotFound = "Version unknown"
)

// Resolver determines (name, version) for resolution targets using a
// prioritized strategy: alias table, metadata index, loader, then a
// fixed probe chain on the live handle.
type Resolver struct {
	index  Index
	loader Loader
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for debug output on fallback steps.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver over the given metadata index and
// loader. A nil index or loader degrades to an empty one, so a Resolver
// is always usable.
func NewResolver(index Index, loader Loader, opts ...ResolverOption) *Resolver {
	r := &Resolver{index: index, loader: loader}
	if r.index == nil {
		r.index = MapIndex{}
	}
	if r.loader == nil {
		r.loader = NewFactoryLoader()
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Index returns the metadata index the resolver consults.
func (r *Resolver) Index() Index {
	return r.index
}

// Resolve determines the display name and version for a target.
//
// The steps, first success wins:
//  1. For by-name targets, apply the alias table.
//  2. Look the (possibly aliased) name up in the metadata index. This
//     path needs no live handle and succeeds even for modules that
//     cannot be loaded.
//  3. For by-name targets, load a handle. A missing module yields the
//     ModuleNotFound sentinel; a factory error or panic yields
//     ModuleTrouble.
//  4. Probe the handle: Version() method, exported Version field, the
//     version-attribute table, then the override-function table.
//  5. Otherwise the version is VersionNotFound.
//
// The only returned error is ErrInvalidTarget for a zero target;
// per-package failures are reported as sentinel version values.
func (r *Resolver) Resolve(t Target) (string, string, error) {
	if t.IsZero() {
		return "", "", ErrInvalidTarget
	}

	name := t.name
	module := t.module
	if module != nil {
		name = module.ModuleName()
	} else if alias, ok := knowledge.Aliases[name]; ok {
		name = alias
	}

	// Metadata first: no code runs and the answer is authoritative for
	// anything the index knows about.
	if version, ok := r.index.Lookup(name); ok {
		return name, version, nil
	}

	if module == nil {
		var err error
		module, err = r.load(name)
		if err != nil {
			if errors.Is(err, ErrModuleNotFound) {
				return name, ModuleNotFound, nil
			}
			r.logger.Debug("trouble loading module", "name", name, "error", err)
			return name, ModuleTrouble, nil
		}
	}

	return name, r.probe(name, module), nil
}

// load obtains a handle from the loader, converting a factory panic
// into an error. Loading runs program code; a panicking factory must
// not take the report down with it.
func (r *Resolver) load(name string) (m Module, err error) {
	defer func() {
		if p := recover(); p != nil {
			m = nil
			err = fmt.Errorf("resolve: panic loading %s: %v", name, p)
		}
	}()
	return r.loader.Load(name)
}

// probe searches a live handle for a version string in fixed priority
// order.
func (r *Resolver) probe(name string, m Module) string {
	if v, ok := m.(Versioner); ok {
		return v.Version()
	}
	if v, ok := fieldByPath(m, "Version"); ok {
		return v
	}
	if path, ok := knowledge.VersionAttributes[name]; ok {
		if v, ok := fieldByPath(m, path); ok {
			return v
		}
	}
	if fn, ok := knowledge.VersionOverrides[name]; ok {
		if v, err := fn(); err == nil {
			return v
		}
		// An override that cannot do its job is a no-match, fall through.
	}
	return VersionNotFound
}

// fieldByPath walks a dotted field path on a handle via reflection and
// renders the terminal value as a string. Pointers are dereferenced at
// each step; a nil pointer, missing field, or non-stringable terminal
// value is a no-match.
func fieldByPath(m Module, path string) (string, bool) {
	v := reflect.ValueOf(m)
	for _, field := range strings.Split(path, ".") {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return "", false
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return "", false
		}
		v = v.FieldByName(field)
		if !v.IsValid() {
			return "", false
		}
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	// Unexported terminals are not part of a handle's surface.
	if !v.CanInterface() {
		return "", false
	}
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}
	return "", false
}

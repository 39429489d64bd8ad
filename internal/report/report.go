package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sleuth-go/sleuth/internal/platform"
	"github.com/sleuth-go/sleuth/internal/registry"
	"github.com/sleuth-go/sleuth/internal/resolve"
)

// Default rendering parameters.
const (
	// DefaultNCol is the number of package columns in the HTML table.
	DefaultNCol = 3

	// DefaultTextWidth is the plain-text line width.
	DefaultTextWidth = 80
)

// DefaultOptional is the set of packages investigated when the caller
// does not supply an optional list. These are the modules most commonly
// compiled into Go tools; absent ones are silently dropped.
var DefaultOptional = []string{
	"github.com/spf13/cobra",
	"gopkg.in/yaml.v3",
	"golang.org/x/text",
	"github.com/sleuth-go/sleuth",
}

// ErrExtraMeta is returned when extra metadata is not a two-element
// pair or a sequence of two-element pairs.
var ErrExtraMeta = errors.New("report: extra metadata must be a key/value pair or a sequence of pairs")

// dateLayout matches the traditional environment-report date line.
const dateLayout = "Mon Jan 02 15:04:05 2006 MST"

// platformKeys is the display order of platform facts in the text and
// HTML renderings. Absent facts (File system, RAM) are skipped.
var platformKeys = []string{
	"OS", "CPU(s)", "Machine", "Architecture", "RAM", "Environment", "File system",
}

// Report owns one package registry, one platform snapshot, extra
// metadata pairs, and the rendering parameters. It is immutable after
// construction except for the snapshot's lazy caches.
type Report struct {
	registry  *registry.Registry
	snapshot  *platform.Snapshot
	index     resolve.Index
	extraMeta [][2]string
	ncol      int
	textWidth int
	maxWidth  int
	showOther bool
}

// config collects construction inputs before validation.
type config struct {
	additional  any
	core        any
	optional    any
	optionalSet bool
	extraMeta   any
	ncol        int
	textWidth   int
	maxWidth    int
	sort        bool
	showOther   bool
	resolver    *resolve.Resolver
	snapshot    *platform.Snapshot
}

// Option configures a Report under construction.
type Option func(*config)

// WithAdditional sets user-specified packages, displayed first. The
// value may be a name, a live handle, or a sequence of either.
func WithAdditional(v any) Option {
	return func(c *config) { c.additional = v }
}

// WithCore sets the library-declared required packages, displayed after
// the additional ones.
func WithCore(v any) Option {
	return func(c *config) { c.core = v }
}

// WithOptional sets the optional packages, displayed last; entries
// whose module is absent are dropped silently. Passing an empty slice
// disables the DefaultOptional set.
func WithOptional(v any) Option {
	return func(c *config) {
		c.optional = v
		c.optionalSet = true
	}
}

// WithExtraMeta adds extra key/value metadata to the report. The value
// must be a single two-element pair or a sequence of two-element pairs;
// anything else fails construction with ErrExtraMeta.
func WithExtraMeta(v any) Option {
	return func(c *config) { c.extraMeta = v }
}

// WithNCol sets the number of package columns in the HTML rendering.
func WithNCol(n int) Option {
	return func(c *config) { c.ncol = n }
}

// WithTextWidth sets the plain-text line width.
func WithTextWidth(w int) Option {
	return func(c *config) { c.textWidth = w }
}

// WithMaxWidth constrains the HTML table to a pixel width. Zero means
// unconstrained.
func WithMaxWidth(px int) Option {
	return func(c *config) { c.maxWidth = px }
}

// WithSort switches package iteration to case-insensitive alphabetical
// order.
func WithSort(sort bool) Option {
	return func(c *config) { c.sort = sort }
}

// WithShowOther includes the "other installed packages" view: every
// module the metadata index knows about that the report does not
// already list.
func WithShowOther(show bool) Option {
	return func(c *config) { c.showOther = show }
}

// WithResolver sets the resolver used to build the package registry.
// Defaults to a resolver over the running binary's build information.
func WithResolver(r *resolve.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithSnapshot injects a platform snapshot, mainly for tests.
func WithSnapshot(s *platform.Snapshot) Option {
	return func(c *config) { c.snapshot = s }
}

// New constructs a Report. Construction resolves every requested
// package immediately; per-package failures become sentinel versions
// and never fail construction. Construction fails only on usage
// errors: malformed package specifications or extra metadata.
func New(opts ...Option) (*Report, error) {
	cfg := config{ncol: DefaultNCol, textWidth: DefaultTextWidth}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.resolver == nil {
		cfg.resolver = resolve.NewResolver(resolve.NewBuildInfoIndex(), resolve.NewFactoryLoader())
	}
	if cfg.snapshot == nil {
		cfg.snapshot = platform.NewSnapshot()
	}
	if !cfg.optionalSet {
		cfg.optional = DefaultOptional
	}

	additional, err := resolve.AsTargets(cfg.additional)
	if err != nil {
		return nil, err
	}
	core, err := resolve.AsTargets(cfg.core)
	if err != nil {
		return nil, err
	}
	optional, err := resolve.AsTargets(cfg.optional)
	if err != nil {
		return nil, err
	}
	extraMeta, err := normalizeExtraMeta(cfg.extraMeta)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Build(cfg.resolver, additional, core, optional, cfg.sort)
	if err != nil {
		return nil, err
	}

	return &Report{
		registry:  reg,
		snapshot:  cfg.snapshot,
		index:     cfg.resolver.Index(),
		extraMeta: extraMeta,
		ncol:      cfg.ncol,
		textWidth: cfg.textWidth,
		maxWidth:  cfg.maxWidth,
		showOther: cfg.showOther,
	}, nil
}

// normalizeExtraMeta validates the dynamically-shaped extra metadata
// input. Accepted: nil, a single pair ([2]string or a two-element
// []string), or a sequence of such pairs.
func normalizeExtraMeta(v any) ([][2]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case [2]string:
		return [][2]string{x}, nil
	case []string:
		if len(x) == 2 {
			return [][2]string{{x[0], x[1]}}, nil
		}
		return nil, fmt.Errorf("%w: got a %d-element string sequence", ErrExtraMeta, len(x))
	case [][2]string:
		return x, nil
	case [][]string:
		out := make([][2]string, 0, len(x))
		for _, pair := range x {
			if len(pair) != 2 {
				return nil, fmt.Errorf("%w: got a %d-element chunk", ErrExtraMeta, len(pair))
			}
			out = append(out, [2]string{pair[0], pair[1]})
		}
		return out, nil
	case []any:
		// A two-element sequence of strings is a single pair, matching
		// the single-pair []string form.
		if len(x) == 2 {
			k, kok := x[0].(string)
			val, vok := x[1].(string)
			if kok && vok {
				return [][2]string{{k, val}}, nil
			}
		}
		out := make([][2]string, 0, len(x))
		for _, elem := range x {
			pair, err := normalizeExtraMeta(elem)
			if err != nil {
				return nil, err
			}
			if len(pair) != 1 {
				return nil, fmt.Errorf("%w: nested sequences are not pairs", ErrExtraMeta)
			}
			out = append(out, pair[0])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrExtraMeta, v)
	}
}

// Packages returns the report's package entries in display order.
func (r *Report) Packages() []registry.Entry {
	return r.registry.Packages()
}

// Other returns the other-installed-packages view, always sorted
// case-insensitively.
func (r *Report) Other() []registry.Entry {
	return r.registry.Other(r.index)
}

// Dict returns the report as a flat mapping from display key to string
// value, suitable for storage or JSON serialization.
func (r *Report) Dict() map[string]string {
	out := make(map[string]string)

	out["Date"] = r.snapshot.Date().Format(dateLayout)

	out["OS"] = r.snapshot.OS()
	out["CPU(s)"] = strconv.Itoa(r.snapshot.CPUCount())
	out["Machine"] = r.snapshot.Machine()
	out["Architecture"] = r.snapshot.Architecture()
	if fs, ok := r.snapshot.Filesystem(); ok {
		out["File system"] = fs
	}
	if ram := r.snapshot.TotalRAM(); ram != platform.RAMUnknown {
		out["RAM"] = ram
	}
	out["Environment"] = r.snapshot.Environment()
	for _, meta := range r.extraMeta {
		out[meta[0]] = meta[1]
	}

	out["Go"] = r.snapshot.GoVersion()

	for _, entry := range r.registry.Packages() {
		out[entry.Name] = entry.Version
	}

	if build, ok := r.snapshot.BuildMeta(); ok {
		out["Build"] = build
	}

	if r.showOther {
		other := make(map[string]string)
		for _, entry := range r.Other() {
			other[entry.Name] = entry.Version
		}
		if data, err := json.Marshal(other); err == nil {
			out["other"] = string(data)
		}
	}

	return out
}

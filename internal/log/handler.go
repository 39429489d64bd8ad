package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// CompactHandler is an slog.Handler that writes one terse line per
// record: "level: message key=value ...". It drops timestamps and
// source locations, which are noise for a short-lived CLI process.
//
// Design decision: We implement slog.Handler rather than wrapping
// fmt.Fprintf calls because:
//  1. It integrates seamlessly with standard slog APIs
//  2. Components only ever see a *slog.Logger, so the format can change
//     without touching call sites
//  3. Level gating is handled by slog before records are built
type CompactHandler struct {
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string

	// mu guards w; handlers may be used from multiple goroutines.
	mu *sync.Mutex
}

// NewCompactHandler creates a CompactHandler writing to w at the given
// minimum level.
func NewCompactHandler(w io.Writer, level slog.Level) *CompactHandler {
	return &CompactHandler{w: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as a single line and writes it.
func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(r.Level.String()))
	sb.WriteString(": ")
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&sb, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a new handler that includes the given attributes on
// every record.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new handler that prefixes attribute keys with the
// group name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// appendAttr writes one " key=value" pair, flattening groups with
// dotted keys. Values containing spaces or quotes are quoted.
func (h *CompactHandler) appendAttr(sb *strings.Builder, a slog.Attr) {
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(sb, slog.Attr{Key: a.Key + "." + ga.Key, Value: ga.Value})
		}
		return
	}
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	value := fmt.Sprintf("%v", a.Value.Resolve().Any())
	if strings.ContainsAny(value, " \t\"=") {
		value = strconv.Quote(value)
	}

	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(value)
}

// NewLogger creates a *slog.Logger with compact output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or
// passed to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewCompactHandler(w, level))
}

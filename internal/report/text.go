package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// Bounds for the right-aligned name column in the text rendering.
const (
	minRowWidth = 18
	maxRowWidth = 40
)

// Text renders the report as a fixed-width plain-text block: a
// horizontal rule, the date line, the platform facts right-aligned in a
// column sized to the longest package name, the Go runtime line, one
// line per package, the optional other-packages section under a "~"
// separator, the optional build-metadata block, and a closing rule.
func (r *Report) Text() string {
	var sb strings.Builder
	rule := strings.Repeat("-", r.textWidth)
	dict := r.Dict()

	sb.WriteString("\n" + rule + "\n")

	// Date line, word-wrapped with continuation lines indented under
	// the value.
	const dateLabel = "  Date: "
	indent := strings.Repeat(" ", len(dateLabel))
	for i, line := range wrapText(dict["Date"], r.textWidth-len(dateLabel)) {
		if i == 0 {
			sb.WriteString(dateLabel + line + "\n")
		} else {
			sb.WriteString(indent + line + "\n")
		}
	}
	sb.WriteString("\n")

	rowWidth := r.rowWidth()

	for _, key := range platformKeys {
		if value, ok := dict[key]; ok {
			fmt.Fprintf(&sb, "%s : %s\n", runewidth.FillLeft(key, rowWidth), value)
		}
	}
	for _, meta := range r.extraMeta {
		fmt.Fprintf(&sb, "%s : %s\n", runewidth.FillLeft(meta[0], rowWidth), meta[1])
	}

	sb.WriteString("\n")
	for _, line := range wrapText("Go "+r.snapshot.GoVersion(), r.textWidth-4) {
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString("\n")

	for _, entry := range r.registry.Packages() {
		fmt.Fprintf(&sb, "%s : %s\n", runewidth.FillLeft(entry.Name, rowWidth), entry.Version)
	}

	if r.showOther {
		if other := r.Other(); len(other) > 0 {
			sb.WriteString("\n" + strings.Repeat("~", r.textWidth) + "\n")
			for _, entry := range other {
				fmt.Fprintf(&sb, "%s : %s\n", runewidth.FillLeft(entry.Name, rowWidth), entry.Version)
			}
		}
	}

	if build, ok := r.snapshot.BuildMeta(); ok {
		sb.WriteString("\n")
		for _, line := range wrapText(build, r.textWidth-4) {
			sb.WriteString("  " + line + "\n")
		}
	}

	sb.WriteString(rule)
	return sb.String()
}

// rowWidth sizes the name column to the longest package name, bounded
// to [minRowWidth, maxRowWidth].
func (r *Report) rowWidth() int {
	longest := 0
	for _, name := range r.registry.Names() {
		if w := runewidth.StringWidth(name); w > longest {
			longest = w
		}
	}
	if longest < minRowWidth {
		return minRowWidth
	}
	if longest > maxRowWidth {
		return maxRowWidth
	}
	return longest
}

// wrapText word-wraps s to the given width and returns the lines.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	return strings.Split(wordwrap.String(s, width), "\n")
}

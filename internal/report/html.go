package report

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// cellBorder is the inline style fragment closing every cell's style
// attribute. Kept verbatim across cells so the output diffs cleanly.
const cellBorder = "border: 2px solid #fff;'"

// HTML renders the report as a table with the same logical content as
// the text rendering: spanning title rows for the date, the Go runtime
// line, and the optional build metadata, and a grid of (name, version)
// cell pairs wrapped to ncol pairs per row. The last grid row is padded
// with empty cells so every row has the same column count.
func (r *Report) HTML() string {
	var sb strings.Builder
	dict := r.Dict()

	if r.maxWidth > 0 {
		fmt.Fprintf(&sb, "<table style='border: 3px solid #ddd; max-width: %dpx;'>\n", r.maxWidth)
	} else {
		sb.WriteString("<table style='border: 3px solid #ddd;'>\n")
	}

	// Date as the bold title row.
	r.colspan(&sb, dict["Date"], 0)

	// Platform facts as a cell grid.
	sb.WriteString("  <tr>\n")
	i := 0
	for _, key := range platformKeys {
		if value, ok := dict[key]; ok {
			i = r.cols(&sb, key, value, i)
		}
	}
	for _, meta := range r.extraMeta {
		i = r.cols(&sb, meta[0], meta[1], i)
	}
	sb.WriteString("  </tr>\n")

	// Go runtime line.
	r.colspan(&sb, "Go "+r.snapshot.GoVersion(), 1)

	// Package grid, padded to a full final row.
	sb.WriteString("  <tr>\n")
	i = 0
	for _, entry := range r.registry.Packages() {
		i = r.cols(&sb, entry.Name, entry.Version, i)
	}
	i = r.padRow(&sb, i)
	sb.WriteString("  </tr>\n")

	if r.showOther {
		if other := r.Other(); len(other) > 0 {
			// Empty spanning row as the section separator; it carries
			// no text so the token stream stays aligned with Text.
			r.colspan(&sb, "", 2)
			sb.WriteString("  <tr>\n")
			i = 0
			for _, entry := range other {
				i = r.cols(&sb, entry.Name, entry.Version, i)
			}
			i = r.padRow(&sb, i)
			sb.WriteString("  </tr>\n")
		}
	}

	if build, ok := r.snapshot.BuildMeta(); ok {
		r.colspan(&sb, build, 2)
	}

	sb.WriteString("</table>")
	return sb.String()
}

// colspan writes txt in a row spanning the whole table. Row zero is the
// bold title; later even rows get a shaded background.
func (r *Report) colspan(sb *strings.Builder, txt string, nrow int) {
	sb.WriteString("  <tr>\n")
	sb.WriteString("     <td style='text-align: center; ")
	if nrow == 0 {
		sb.WriteString("font-weight: bold; font-size: 1.2em; ")
	} else if nrow%2 == 0 {
		sb.WriteString("background-color: #ddd;")
	}
	fmt.Fprintf(sb, "%s colspan='%d'>%s</td>\n", cellBorder, 2*r.ncol, txt)
	sb.WriteString("  </tr>\n")
}

// cols writes one (name, version) cell pair, starting a new table row
// every ncol pairs. Returns the updated pair count.
func (r *Report) cols(sb *strings.Builder, name, version string, i int) int {
	if i > 0 && i%r.ncol == 0 {
		sb.WriteString("  </tr>\n")
		sb.WriteString("  <tr>\n")
	}
	fmt.Fprintf(sb, "    <td style='text-align: right; background-color: #ccc; %s>%s</td>\n", cellBorder, name)
	fmt.Fprintf(sb, "    <td style='text-align: left; %s>%s</td>\n", cellBorder, version)
	return i + 1
}

// padRow fills the current row with empty cell pairs so every row holds
// exactly ncol pairs.
func (r *Report) padRow(sb *strings.Builder, i int) int {
	for i%r.ncol != 0 {
		fmt.Fprintf(sb, "    <td style= %s></td>\n", cellBorder)
		fmt.Fprintf(sb, "    <td style= %s></td>\n", cellBorder)
		i++
	}
	return i
}

// StripHTML removes all markup from an HTML fragment, returning the
// text content with each text node separated by a space. It backs the
// documented equivalence between the HTML and text renderings.
func StripHTML(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			if text := strings.TrimSpace(tokenizer.Token().Data); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

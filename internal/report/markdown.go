package report

import (
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs reports in Markdown format. This format is
// designed for pasting into bug reports and documentation.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown output
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(r *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)
	dict := r.Dict()

	md.H1("Environment Report")
	md.PlainText(dict["Date"])
	md.PlainText("")

	// Platform facts.
	rows := make([][]string, 0, len(platformKeys))
	for _, key := range platformKeys {
		if value, ok := dict[key]; ok {
			rows = append(rows, []string{key, value})
		}
	}
	for _, meta := range r.extraMeta {
		rows = append(rows, []string{meta[0], meta[1]})
	}
	rows = append(rows, []string{"Go", dict["Go"]})
	md.H2("Platform")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})

	// Packages.
	md.H2("Packages")
	pkgRows := make([][]string, 0, len(r.registry.Packages()))
	for _, entry := range r.registry.Packages() {
		pkgRows = append(pkgRows, []string{"`" + entry.Name + "`", entry.Version})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Package", "Version"},
		Rows:   pkgRows,
	})

	if r.showOther {
		if other := r.Other(); len(other) > 0 {
			md.H2("Other installed packages")
			otherRows := make([][]string, 0, len(other))
			for _, entry := range other {
				otherRows = append(otherRows, []string{"`" + entry.Name + "`", entry.Version})
			}
			md.Table(markdown.TableSet{
				Header: []string{"Package", "Version"},
				Rows:   otherRows,
			})
		}
	}

	if build, ok := r.snapshot.BuildMeta(); ok {
		md.PlainText("")
		md.PlainText(build)
	}

	return len(md.String()), md.Build()
}

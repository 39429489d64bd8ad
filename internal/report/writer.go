package report

import (
	"io"
)

// Writer defines the interface for report output.
// Implementations render a Report in one format and write it to their
// configured destination.
//
// Design decision: We use an interface to allow different output
// formats and destinations. This enables writing to files, stdout, or
// buffers with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(r *Report) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously. This is useful
// for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different from
// io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers. Returns the total
// bytes written across all writers. Stops on first error encountered.
func (m *MultiWriter) Write(r *Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// TextWriter outputs the plain-text rendering followed by a newline.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in plain-text format.
func (w *TextWriter) Write(r *Report) (int, error) {
	return w.output.Write([]byte(r.Text() + "\n"))
}

// HTMLWriter outputs the HTML rendering followed by a newline.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in HTML format.
func (w *HTMLWriter) Write(r *Report) (int, error) {
	return w.output.Write([]byte(r.HTML() + "\n"))
}

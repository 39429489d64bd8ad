// Package report assembles and renders environment reports.
//
// A Report combines one package registry, one platform snapshot, and
// optional extra metadata into a single immutable object exposing three
// isomorphic renderings: plain text, HTML, and a flat dict. The plain
// text and HTML renderings are informationally equivalent: stripping
// the HTML markup and normalizing whitespace reproduces the plain-text
// token sequence, except that the plain text leads with a literal
// "Date" label the HTML title row does not carry.
//
// The package also provides writers in various formats (text, HTML,
// JSON, Markdown) behind a common Writer interface, so reports can go
// to stdout, files, or several destinations at once.
//
// Reports are constructed once per invocation and never persisted; the
// rendering methods recompute their output from current state on every
// call. A Report is safe to use from one goroutine only: the embedded
// snapshot caches lazily without locking.
package report

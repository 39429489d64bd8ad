// Package platform takes a read-only snapshot of the host and runtime
// environment for inclusion in a report.
//
// Every fact is computed at most once per Snapshot and cached behind an
// explicit computed flag; a Snapshot never recomputes or invalidates
// within its lifetime. Facts that can fail to resolve degrade to a
// documented placeholder ("unknown" for RAM, absence for the
// filesystem type) instead of returning errors.
//
// Snapshots hold no locks and are meant for single-threaded use, which
// matches how reports are constructed. Independent Snapshot instances
// do not share state.
package platform

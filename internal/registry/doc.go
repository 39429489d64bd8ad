// Package registry builds the ordered, deduplicated package list that
// a report displays.
//
// A registry merges three input lists with defined precedence:
// additional (user-specified, displayed first), core (declared by the
// embedding library), and optional (shown only when present). Optional
// entries that resolve to the not-found sentinel are silently dropped;
// the same entries supplied via additional or core are kept with the
// sentinel shown.
//
// Iteration follows first-insertion order unless the sort flag is set,
// in which case Packages yields case-insensitive alphabetical order
// without disturbing the insertion bookkeeping for later inserts.
package registry

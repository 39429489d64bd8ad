// Package tracker records which modules a program loads, so a report
// can be generated from actual usage instead of a hand-maintained list.
//
// A Tracker observes a resolve.FactoryLoader: once started, every
// successful load is appended to an ordered list, excluding
// standard-library names and a small denylist. The tracker owns its
// list explicitly and has a Start/Stop lifecycle; starting twice, or
// asking for a report before anything was tracked, is a usage error.
//
// This replaces the classic trick of swapping a process-wide import
// hook: the mutable state lives in one owned object instead of a
// global, and stopping restores the loader untouched.
package tracker

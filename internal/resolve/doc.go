// Package resolve determines display names and version strings for
// packages, across the heterogeneous conventions of the Go ecosystem.
//
// The resolver consults two collaborators, both treated as black boxes:
//
//   - an Index of module metadata (by default the module list compiled
//     into the running binary via runtime/debug.ReadBuildInfo), which
//     can answer version queries without loading anything; and
//   - a Loader of live module handles, by default a registry of named
//     factories the embedding program populates. Loading may run
//     arbitrary program code, which is an accepted, documented risk:
//     the resolver converts factory errors and panics into sentinel
//     values rather than propagating them.
//
// Resolution never fails for a missing or broken module. The three
// outcomes that are not real versions are reported as the sentinel
// strings ModuleNotFound, ModuleTrouble, and VersionNotFound, displayed
// inline in reports. The only error Resolve returns is for an invalid
// target, which is a usage error on the caller's side.
package resolve

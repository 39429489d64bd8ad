// Package knowledge is the static knowledge base for version resolution.
//
// It records the oddballs of the Go packaging world: package paths that
// should be reported under their parent module's name, modules whose
// version string lives at a nonstandard attribute location on a live
// handle, and modules that need custom logic to determine a version at
// all. It also provides standard-library detection and lightweight
// version-string comparison.
//
// Design decision: The tables are exported mutable maps rather than
// registration functions. Embedding programs extend them at init time,
// mirroring how the rest of the codebase treats this package: a plain
// lookup source with no behavior of its own.
package knowledge

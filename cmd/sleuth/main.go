// Package main provides the entry point for the sleuth CLI.
//
// sleuth reports on the Go environment it runs in: platform facts,
// toolchain version, and the versions of requested modules.
//
// Usage:
//
//	sleuth
//	sleuth --report ./path/to/module
//
// See --help for all available options.
package main

// main is the entry point for sleuth.
func main() {
	Execute()
}

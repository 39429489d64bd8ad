package resolve

import (
	"runtime/debug"
)

// Index answers version queries from package metadata without loading
// any code. A lookup miss means the index has no record of the name,
// not that the package is absent from the process.
type Index interface {
	// Lookup returns the declared version for name, if known.
	Lookup(name string) (string, bool)

	// All returns every known name mapped to its declared version.
	// The returned map is owned by the caller.
	All() map[string]string
}

// BuildInfoIndex is the default Index: the module list that the Go
// toolchain compiled into the running binary. It covers the main module
// and every dependency module, including ones with no loadable handle.
type BuildInfoIndex struct {
	mods map[string]string
}

// NewBuildInfoIndex reads the running binary's build information. When
// build information is unavailable (binaries built without module
// support) the index is empty rather than an error: resolution degrades
// to loader-based lookup.
func NewBuildInfoIndex() *BuildInfoIndex {
	idx := &BuildInfoIndex{mods: make(map[string]string)}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return idx
	}
	if info.Main.Path != "" {
		idx.mods[info.Main.Path] = mainVersion(info.Main.Version)
	}
	for _, dep := range info.Deps {
		mod := dep
		// A replaced module reports the replacement's version.
		if dep.Replace != nil {
			mod = dep.Replace
		}
		idx.mods[dep.Path] = mod.Version
	}
	return idx
}

// mainVersion normalizes the main module's version, which the toolchain
// reports as "(devel)" for local builds.
func mainVersion(v string) string {
	if v == "" {
		return "(devel)"
	}
	return v
}

// Lookup returns the compiled-in version of the named module.
func (i *BuildInfoIndex) Lookup(name string) (string, bool) {
	v, ok := i.mods[name]
	return v, ok
}

// All returns a copy of the full module-to-version mapping.
func (i *BuildInfoIndex) All() map[string]string {
	out := make(map[string]string, len(i.mods))
	for k, v := range i.mods {
		out[k] = v
	}
	return out
}

// MapIndex is an Index backed by a plain map. It is the building block
// for tests and for programs that assemble their own metadata view.
type MapIndex map[string]string

// Lookup returns the mapped version for name.
func (m MapIndex) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// All returns a copy of the mapping.
func (m MapIndex) All() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

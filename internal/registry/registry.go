package registry

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sleuth-go/sleuth/internal/resolve"
)

// Entry is one resolved package: a canonical name and either a version
// string or one of the resolver's sentinel values.
type Entry struct {
	Name    string
	Version string
}

// Registry is an insertion-ordered mapping of package name to version.
// Each name appears at most once; later insertions overwrite the value
// for the same name but keep its first insertion position.
type Registry struct {
	names    []string
	versions map[string]string
	sorted   bool
}

// collator performs case-insensitive name comparison for display
// ordering. Collation-based rather than ToLower-based so that names
// beyond ASCII order sanely.
var collator = collate.New(language.Und, collate.IgnoreCase)

// Build merges the three input lists into a Registry, resolving every
// target through res. Insertion order is additional, core, optional;
// optional entries resolving to the not-found sentinel are dropped.
// The sortFlag changes display order only.
//
// Build returns an error only for an invalid target, which is a usage
// error; per-package resolution failures are recorded as sentinels.
func Build(res *resolve.Resolver, additional, core, optional []resolve.Target, sortFlag bool) (*Registry, error) {
	r := &Registry{
		versions: make(map[string]string),
		sorted:   sortFlag,
	}
	if err := r.add(res, additional, false); err != nil {
		return nil, err
	}
	if err := r.add(res, core, false); err != nil {
		return nil, err
	}
	if err := r.add(res, optional, true); err != nil {
		return nil, err
	}
	return r, nil
}

// add resolves and inserts targets. Optional targets whose module is
// absent are skipped rather than recorded.
func (r *Registry) add(res *resolve.Resolver, targets []resolve.Target, optional bool) error {
	for _, t := range targets {
		name, version, err := res.Resolve(t)
		if err != nil {
			return err
		}
		if optional && version == resolve.ModuleNotFound {
			continue
		}
		r.set(name, version)
	}
	return nil
}

// set records version under name, keeping the first insertion position
// when the name is already present.
func (r *Registry) set(name, version string) {
	if _, ok := r.versions[name]; !ok {
		r.names = append(r.names, name)
	}
	r.versions[name] = version
}

// Len returns the number of distinct packages.
func (r *Registry) Len() int {
	return len(r.names)
}

// Version returns the recorded version for name.
func (r *Registry) Version(name string) (string, bool) {
	v, ok := r.versions[name]
	return v, ok
}

// Names returns package names in display order: insertion order, or
// case-insensitive alphabetical when the registry was built sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	if r.sorted {
		sortCaseInsensitive(names)
	}
	return names
}

// Packages returns all entries in display order.
func (r *Registry) Packages() []Entry {
	names := r.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Version: r.versions[name]})
	}
	return entries
}

// Other computes the "other installed packages" view: everything the
// metadata index knows about minus the names already in the registry.
// Always case-insensitively sorted, regardless of the sort flag.
func (r *Registry) Other(index resolve.Index) []Entry {
	all := index.All()
	names := make([]string, 0, len(all))
	for name := range all {
		if _, present := r.versions[name]; present {
			continue
		}
		names = append(names, name)
	}
	sortCaseInsensitive(names)
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Version: all[name]})
	}
	return entries
}

func sortCaseInsensitive(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return collator.CompareString(names[i], names[j]) < 0
	})
}

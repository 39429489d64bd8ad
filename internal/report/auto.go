package report

import (
	"fmt"
	"os"

	"golang.org/x/mod/modfile"
)

// DistributionDependencies extracts a module's declared dependencies
// from its go.mod: the module's own path, its direct requirements, and
// its indirect requirements.
func DistributionDependencies(gomodPath string) (module string, direct, indirect []string, err error) {
	data, err := os.ReadFile(gomodPath) //nolint:gosec // User-provided go.mod path is intentional
	if err != nil {
		return "", nil, nil, fmt.Errorf("report: reading %s: %w", gomodPath, err)
	}
	f, err := modfile.Parse(gomodPath, data, nil)
	if err != nil {
		return "", nil, nil, fmt.Errorf("report: parsing %s: %w", gomodPath, err)
	}
	if f.Module != nil {
		module = f.Module.Mod.Path
	}
	for _, req := range f.Require {
		if req.Indirect {
			indirect = append(indirect, req.Mod.Path)
		} else {
			direct = append(direct, req.Mod.Path)
		}
	}
	return module, direct, indirect, nil
}

// NewAutoReport builds a Report whose package lists are derived from a
// module's go.mod: the module itself and its direct requirements form
// the core list, and its indirect requirements form the optional list
// (shown only when compiled in). This is a thin composition over New;
// it fails only when the go.mod cannot be read or parsed, or on the
// same usage errors New reports.
func NewAutoReport(gomodPath string, opts ...Option) (*Report, error) {
	module, direct, indirect, err := DistributionDependencies(gomodPath)
	if err != nil {
		return nil, err
	}
	core := direct
	if module != "" {
		core = append([]string{module}, direct...)
	}
	opts = append(opts, WithCore(core), WithOptional(indirect))
	return New(opts...)
}

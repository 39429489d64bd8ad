package knowledge

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Aliases maps package paths to the module name they should be reported
// under. Callers frequently hand us a subpackage path (the thing they
// import) rather than the module path (the thing that carries a version).
var Aliases = map[string]string{
	"github.com/shirou/gopsutil/v4/host": "github.com/shirou/gopsutil/v4",
	"github.com/shirou/gopsutil/v4/mem":  "github.com/shirou/gopsutil/v4",
	"github.com/shirou/gopsutil/v4/disk": "github.com/shirou/gopsutil/v4",
	"golang.org/x/net/html":              "golang.org/x/net",
	"golang.org/x/text/collate":          "golang.org/x/text",
	"golang.org/x/mod/modfile":           "golang.org/x/mod",
	"google.golang.org/protobuf/proto":   "google.golang.org/protobuf",
}

// VersionAttributes maps a module name to a dotted field path on its
// live handle where the version string lives. Only needed for modules
// whose handles expose neither a Version() method nor a Version field.
var VersionAttributes = map[string]string{
	"modernc.org/sqlite":     "Build.Version",
	"github.com/d5/tengo/v2": "Meta.Version",
}

// VersionOverrides maps a module name to a function implementing custom
// version lookup. An override returning an error is treated as no-match
// by the resolver, never as a failure.
var VersionOverrides = map[string]func() (string, error){
	// The toolchain itself: "go" resolves to the runtime's Go version.
	"go": func() (string, error) {
		return strings.TrimPrefix(runtime.Version(), "go"), nil
	},
}

// DenyTracking lists module names the load tracker ignores. These show
// up as loads in practice but carry no signal in an environment report.
var DenyTracking = map[string]struct{}{
	"github.com/davecgh/go-spew": {},
	"gopkg.in/check.v1":          {},
}

// IsStandardLibrary reports whether name refers to a Go standard-library
// package. Standard-library import paths have no dot in their first path
// element ("fmt", "net/http"), while module paths start with a domain
// ("github.com/...", "gopkg.in/...").
func IsStandardLibrary(name string) bool {
	if name == "" {
		return false
	}
	first := name
	if i := strings.IndexByte(name, '/'); i >= 0 {
		first = name[:i]
	}
	return !strings.Contains(first, ".")
}

// ErrVersionFormat is returned when a version string has more than three
// dot-separated components. Comparing such a string is a usage error,
// not a condition to degrade from.
var ErrVersionFormat = errors.New("knowledge: version string has more than three components")

// VersionTuple converts a version string into a three-component integer
// tuple. Each component contributes its leading digits; a component with
// no leading digits (or a missing component) counts as zero, so
// "0.28.0dev0" becomes (0, 28, 0). More than three components is an
// error.
func VersionTuple(version string) ([3]int, error) {
	var tuple [3]int
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		return tuple, fmt.Errorf("%w: %q", ErrVersionFormat, version)
	}
	for i, part := range parts {
		tuple[i] = leadingInt(part)
	}
	return tuple, nil
}

// MeetsVersion reports whether version is at least reference, comparing
// component-wise after VersionTuple conversion. Either argument having
// more than three components is an error.
func MeetsVersion(version, reference string) (bool, error) {
	v, err := VersionTuple(version)
	if err != nil {
		return false, err
	}
	ref, err := VersionTuple(reference)
	if err != nil {
		return false, err
	}
	for i := range v {
		if v[i] != ref[i] {
			return v[i] > ref[i], nil
		}
	}
	return true, nil
}

// leadingInt parses the leading decimal digits of s, returning zero when
// s does not start with a digit.
func leadingInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Runtime flavor values reported by Environment.
const (
	// EnvGo means an ordinary compiled binary.
	EnvGo = "Go"

	// EnvGoRun means the binary was built into the go-build cache by
	// "go run".
	EnvGoRun = "GoRun"

	// EnvGoTest means the process is a test binary.
	EnvGoTest = "GoTest"
)

// RAMUnknown is the placeholder when total memory cannot be determined.
const RAMUnknown = "unknown"

// Probes are the system primitives a Snapshot reads. They default to
// the real host APIs and are injectable for tests.
type Probes struct {
	HostInfo      func() (*host.InfoStat, error)
	VirtualMemory func() (*mem.VirtualMemoryStat, error)
	DiskUsage     func(path string) (*disk.UsageStat, error)
	Executable    func() (string, error)
	NumCPU        func() int
	Now           func() time.Time
	BuildInfo     func() (*debug.BuildInfo, bool)
}

// defaults fills in real host APIs for any probe left nil.
func (p *Probes) defaults() {
	if p.HostInfo == nil {
		p.HostInfo = host.Info
	}
	if p.VirtualMemory == nil {
		p.VirtualMemory = mem.VirtualMemory
	}
	if p.DiskUsage == nil {
		p.DiskUsage = disk.Usage
	}
	if p.Executable == nil {
		p.Executable = executable
	}
	if p.NumCPU == nil {
		p.NumCPU = runtime.NumCPU
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.BuildInfo == nil {
		p.BuildInfo = debug.ReadBuildInfo
	}
}

// Snapshot caches platform facts for the lifetime of one report.
// First access computes and stores; the stored value is never
// recomputed. Not safe for concurrent use.
type Snapshot struct {
	probes Probes

	osName     string
	osDone     bool
	machine    string
	machDone   bool
	cpus       int
	cpusDone   bool
	ram        string
	ramDone    bool
	fs         string
	fsOK       bool
	fsDone     bool
	env        string
	envDone    bool
	date       time.Time
	dateDone   bool
	build      string
	buildOK    bool
	buildDone  bool
}

// NewSnapshot creates a Snapshot over the real host APIs.
func NewSnapshot() *Snapshot {
	return NewSnapshotWithProbes(Probes{})
}

// NewSnapshotWithProbes creates a Snapshot with injected primitives.
// Probes left nil fall back to the real host APIs.
func NewSnapshotWithProbes(p Probes) *Snapshot {
	p.defaults()
	return &Snapshot{probes: p}
}

// OS returns the OS name with a best-effort distribution or sub-version
// suffix, e.g. "linux (Ubuntu 24.04)". The bare GOOS name is always
// available, so this accessor cannot fail.
func (s *Snapshot) OS() string {
	if s.osDone {
		return s.osName
	}
	s.osName = runtime.GOOS
	if info, err := s.probes.HostInfo(); err == nil && info != nil && info.Platform != "" {
		suffix := info.Platform
		if info.PlatformVersion != "" {
			suffix += " " + info.PlatformVersion
		}
		s.osName = fmt.Sprintf("%s (%s)", runtime.GOOS, suffix)
	}
	s.osDone = true
	return s.osName
}

// Machine returns the machine architecture, preferring the kernel's
// report over the compile-time GOARCH.
func (s *Snapshot) Machine() string {
	if s.machDone {
		return s.machine
	}
	s.machine = runtime.GOARCH
	if info, err := s.probes.HostInfo(); err == nil && info != nil && info.KernelArch != "" {
		s.machine = info.KernelArch
	}
	s.machDone = true
	return s.machine
}

// Architecture returns the bit width of the executable, e.g. "64-bit".
func (s *Snapshot) Architecture() string {
	return strconv.Itoa(strconv.IntSize) + "-bit"
}

// CPUCount returns the number of logical CPUs.
func (s *Snapshot) CPUCount() int {
	if !s.cpusDone {
		s.cpus = s.probes.NumCPU()
		s.cpusDone = true
	}
	return s.cpus
}

// TotalRAM returns the total physical memory formatted in GB, or
// RAMUnknown when it cannot be determined.
func (s *Snapshot) TotalRAM() string {
	if s.ramDone {
		return s.ram
	}
	s.ram = RAMUnknown
	if vm, err := s.probes.VirtualMemory(); err == nil && vm != nil && vm.Total > 0 {
		s.ram = fmt.Sprintf("%.1f GB", float64(vm.Total)/(1024*1024*1024))
	}
	s.ramDone = true
	return s.ram
}

// Filesystem returns the filesystem type at the executable's own
// location. The second return value is false when the type cannot be
// determined or the OS does not support the query.
func (s *Snapshot) Filesystem() (string, bool) {
	if s.fsDone {
		return s.fs, s.fsOK
	}
	s.fsDone = true
	exe, err := s.probes.Executable()
	if err != nil {
		return "", false
	}
	usage, err := s.probes.DiskUsage(filepath.Dir(exe))
	if err != nil || usage == nil || usage.Fstype == "" {
		return "", false
	}
	s.fs, s.fsOK = usage.Fstype, true
	return s.fs, s.fsOK
}

// Environment returns the runtime flavor: EnvGoTest for test binaries,
// EnvGoRun for "go run" builds, EnvGo otherwise.
func (s *Snapshot) Environment() string {
	if s.envDone {
		return s.env
	}
	s.env = EnvGo
	if exe, err := s.probes.Executable(); err == nil {
		base := filepath.Base(exe)
		switch {
		case strings.HasSuffix(base, ".test") || strings.Contains(base, ".test."):
			s.env = EnvGoTest
		case strings.Contains(exe, string(filepath.Separator)+"go-build"):
			s.env = EnvGoRun
		}
	}
	s.envDone = true
	return s.env
}

// Date returns the snapshot's UTC timestamp, fixed at first access.
func (s *Snapshot) Date() time.Time {
	if !s.dateDone {
		s.date = s.probes.Now().UTC()
		s.dateDone = true
	}
	return s.date
}

// GoVersion returns the runtime version line, e.g.
// "go1.25.0 linux/amd64 (gc)".
func (s *Snapshot) GoVersion() string {
	return fmt.Sprintf("%s %s/%s (%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.Compiler)
}

// BuildMeta returns a one-line summary of the binary's VCS build
// metadata, when the toolchain stamped any. The second return value is
// false for binaries built outside a repository.
func (s *Snapshot) BuildMeta() (string, bool) {
	if s.buildDone {
		return s.build, s.buildOK
	}
	s.buildDone = true
	info, ok := s.probes.BuildInfo()
	if !ok || info == nil {
		return "", false
	}
	var rev, at string
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}
		case "vcs.time":
			at = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if rev == "" {
		return "", false
	}
	s.build = "Built from " + rev
	if at != "" {
		s.build += " at " + at
	}
	if dirty {
		s.build += " (modified)"
	}
	s.buildOK = true
	return s.build, s.buildOK
}

// executable is the default Executable probe.
func executable() (string, error) {
	return os.Executable()
}

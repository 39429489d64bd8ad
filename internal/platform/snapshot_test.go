package platform

import (
	"errors"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// TestSnapshotCaching tests that every fact is computed exactly once.
func TestSnapshotCaching(t *testing.T) {
	t.Parallel()

	hostCalls := 0
	memCalls := 0
	nowCalls := 0

	s := NewSnapshotWithProbes(Probes{
		HostInfo: func() (*host.InfoStat, error) {
			hostCalls++
			return &host.InfoStat{Platform: "ubuntu", PlatformVersion: "24.04"}, nil
		},
		VirtualMemory: func() (*mem.VirtualMemoryStat, error) {
			memCalls++
			return &mem.VirtualMemoryStat{Total: 8 * 1024 * 1024 * 1024}, nil
		},
		Now: func() time.Time {
			nowCalls++
			return time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
		},
	})

	first := s.OS()
	second := s.OS()
	if first != second {
		t.Errorf("OS changed between accesses: %q vs %q", first, second)
	}
	if hostCalls != 1 {
		t.Errorf("HostInfo called %d times, expected 1", hostCalls)
	}

	_ = s.TotalRAM()
	_ = s.TotalRAM()
	if memCalls != 1 {
		t.Errorf("VirtualMemory called %d times, expected 1", memCalls)
	}

	d1 := s.Date()
	d2 := s.Date()
	if !d1.Equal(d2) {
		t.Error("Date changed between accesses")
	}
	if nowCalls != 1 {
		t.Errorf("Now called %d times, expected 1", nowCalls)
	}
}

// TestSnapshotDegradation tests placeholders for unresolvable facts.
func TestSnapshotDegradation(t *testing.T) {
	t.Parallel()

	s := NewSnapshotWithProbes(Probes{
		HostInfo: func() (*host.InfoStat, error) {
			return nil, errors.New("unsupported")
		},
		VirtualMemory: func() (*mem.VirtualMemoryStat, error) {
			return nil, errors.New("unsupported")
		},
		DiskUsage: func(string) (*disk.UsageStat, error) {
			return nil, errors.New("unsupported")
		},
	})

	t.Run("OS falls back to GOOS", func(t *testing.T) {
		t.Parallel()
		if s.OS() == "" {
			t.Error("expected a non-empty OS name")
		}
	})

	t.Run("RAM degrades to unknown", func(t *testing.T) {
		t.Parallel()
		if got := s.TotalRAM(); got != RAMUnknown {
			t.Errorf("got %q, expected %q", got, RAMUnknown)
		}
	})

	t.Run("filesystem degrades to absent", func(t *testing.T) {
		t.Parallel()
		if _, ok := s.Filesystem(); ok {
			t.Error("expected filesystem to be absent")
		}
	})
}

// TestSnapshotFacts tests the always-available facts.
func TestSnapshotFacts(t *testing.T) {
	t.Parallel()

	s := NewSnapshot()

	t.Run("architecture is a bit width", func(t *testing.T) {
		t.Parallel()
		got := s.Architecture()
		if got != "64-bit" && got != "32-bit" {
			t.Errorf("got %q, expected 64-bit or 32-bit", got)
		}
	})

	t.Run("CPU count is positive", func(t *testing.T) {
		t.Parallel()
		if s.CPUCount() < 1 {
			t.Errorf("got %d CPUs", s.CPUCount())
		}
	})

	t.Run("date is UTC", func(t *testing.T) {
		t.Parallel()
		if s.Date().Location() != time.UTC {
			t.Error("expected a UTC timestamp")
		}
	})

	t.Run("go version line has runtime and platform", func(t *testing.T) {
		t.Parallel()
		v := s.GoVersion()
		if !strings.HasPrefix(v, "go") || !strings.Contains(v, "/") {
			t.Errorf("unexpected version line %q", v)
		}
	})
}

// TestEnvironmentDetection tests runtime flavor detection.
func TestEnvironmentDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		exe  string
		want string
	}{
		{"test binary", "/tmp/go-build123/b001/pkg.test", EnvGoTest},
		{"go run binary", "/home/u/.cache/go-build/f3/exe/main", EnvGoRun},
		{"installed binary", "/usr/local/bin/sleuth", EnvGo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewSnapshotWithProbes(Probes{
				Executable: func() (string, error) { return tt.exe, nil },
			})
			if got := s.Environment(); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestFilesystem tests filesystem type lookup at the executable path.
func TestFilesystem(t *testing.T) {
	t.Parallel()

	s := NewSnapshotWithProbes(Probes{
		Executable: func() (string, error) { return "/usr/local/bin/sleuth", nil },
		DiskUsage: func(path string) (*disk.UsageStat, error) {
			if path != "/usr/local/bin" {
				return nil, errors.New("unexpected path " + path)
			}
			return &disk.UsageStat{Fstype: "ext4"}, nil
		},
	})

	fs, ok := s.Filesystem()
	if !ok || fs != "ext4" {
		t.Errorf("got (%q, %v), expected (ext4, true)", fs, ok)
	}
}

// TestBuildMeta tests the VCS metadata summary.
func TestBuildMeta(t *testing.T) {
	t.Parallel()

	t.Run("stamped binary", func(t *testing.T) {
		t.Parallel()
		s := NewSnapshotWithProbes(Probes{
			BuildInfo: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2026-08-23T10:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				}}, true
			},
		})
		meta, ok := s.BuildMeta()
		if !ok {
			t.Fatal("expected build metadata")
		}
		if !strings.Contains(meta, "0123456") || !strings.Contains(meta, "(modified)") {
			t.Errorf("unexpected metadata %q", meta)
		}
	})

	t.Run("unstamped binary", func(t *testing.T) {
		t.Parallel()
		s := NewSnapshotWithProbes(Probes{
			BuildInfo: func() (*debug.BuildInfo, bool) { return nil, false },
		})
		if _, ok := s.BuildMeta(); ok {
			t.Error("expected no build metadata")
		}
	})
}

package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func restore() func() {
	v, c, b := Version, Commit, BuildTime
	return func() { Version, Commit, BuildTime = v, c, b }
}

func TestGet_LinkTimeValues(t *testing.T) {
	defer restore()()
	Version = "1.2.0"
	Commit = "abcdef123456"
	BuildTime = "2024-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.Commit != "abcdef1" {
		t.Errorf("Commit = %q, want abcdef1", info.Commit)
	}
	if want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC); !info.BuildTime.Equal(want) {
		t.Errorf("BuildTime = %v, want %v", info.BuildTime, want)
	}
}

func TestMerge(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2025-03-01T00:00:00Z"},
		},
	}
	tests := []struct {
		name       string
		info       Info
		wantCommit string
	}{
		{"fills missing commit", Info{Version: "dev"}, "0123456789"},
		{"keeps link-time commit", Info{Version: "dev", Commit: "fff"}, "fff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.info
			merge(&info, bi)
			if info.Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", info.Commit, tt.wantCommit)
			}
			if !info.Dirty || info.GoVersion != "go1.24.0" || info.BuildTime.Year() != 2025 {
				t.Errorf("info = %+v", info)
			}
		})
	}
}

func TestInfo_Format(t *testing.T) {
	tests := []struct {
		name      string
		info      Info
		short     string
		release   bool
		fragments []string
	}{
		{"dev", Info{Version: "dev"}, "dev", false, []string{"smcemu dev"}},
		{"release", Info{Version: "1.0.0", Commit: "abc1234", GoVersion: "go1.24.0"}, "1.0.0-abc1234", true,
			[]string{"smcemu 1.0.0-abc1234 go1.24.0"}},
		{"dirty", Info{Version: "1.0.0", Commit: "abc1234", Dirty: true,
			BuildTime: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}, "1.0.0-abc1234-dirty", false,
			[]string{"dirty", "(built 2024-01-15T10:30:00Z)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.short {
				t.Errorf("Short() = %q, want %q", got, tt.short)
			}
			if got := tt.info.Release(); got != tt.release {
				t.Errorf("Release() = %v, want %v", got, tt.release)
			}
			s := tt.info.String()
			for _, f := range tt.fragments {
				if !strings.Contains(s, f) {
					t.Errorf("String() = %q, missing %q", s, f)
				}
			}
		})
	}
}

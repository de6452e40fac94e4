package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })

	Version, Commit, Date = "1.2.3", "unknown", "unknown"
	if got := String(); !strings.HasPrefix(got, "color-mcp version 1.2.3 (") {
		t.Errorf("String() = %q", got)
	}

	Commit, Date = "0123456789abcdef", "2024-05-01T00:00:00Z"
	got := String()
	if !strings.Contains(got, "commit: 01234567,") {
		t.Errorf("String() should shorten the commit: %q", got)
	}
	if !strings.Contains(got, runtime.Version()) {
		t.Errorf("String() should include the Go version: %q", got)
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
}

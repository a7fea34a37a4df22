package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withVars(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d, rb := Version, Commit, Date, readBuildInfo
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date, readBuildInfo = v, c, d, rb })
}

func TestFillFromModule(t *testing.T) {
	withVars(t, "dev", "none", "unknown")
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "1a2b3c4d5e6f"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, true
	}
	fillFromModule()

	if Version != "v0.3.0" || Commit != "1a2b3c4d5e6f" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("got %s %s %s", Version, Commit, Date)
	}
	if got := Short(); got != "v0.3.0 (1a2b3c4)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestLdflagsWin(t *testing.T) {
	withVars(t, "v1.0.0", "abc", "today")
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
		}, true
	}
	fillFromModule()
	if Version != "v1.0.0" || Commit != "abc" {
		t.Errorf("ldflags overridden: %s %s", Version, Commit)
	}
}

func TestTemplate(t *testing.T) {
	withVars(t, "v1.0.0", "abc", "today")
	if !strings.Contains(Template(), "{{.Name}} version v1.0.0") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: abc") {
		t.Errorf("String() = %q", String())
	}
}

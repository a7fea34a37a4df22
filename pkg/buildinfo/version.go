// Package buildinfo reports the version of the scrollplot binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/scrollplot/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/scrollplot/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
//
// Binaries built with "go install" fall back to the module version and VCS
// stamp recorded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

func init() { fillFromModule() }

func fillFromModule() {
	info, ok := readBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// Short returns the version with an abbreviated commit, e.g. "v0.3.0 (1a2b3c4)".
func Short() string {
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, c)
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

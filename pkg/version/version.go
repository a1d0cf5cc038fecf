// Package version carries build metadata for the markboard binary.
package version

import (
	"fmt"
	"runtime/debug"
)

const unknown = "unknown"

// Build metadata, overridden at link time with
// -ldflags "-X github.com/Sumatoshi-tech/markboard/pkg/version.Version=v1.2.3".
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// InitBinaryVersion fills metadata left at defaults from the embedded build info.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == unknown && setting.Value != "" {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == unknown && setting.Value != "" {
				Date = setting.Value
			}
		}
	}
}

// String formats the metadata for the version command.
func String() string {
	return fmt.Sprintf("markboard %s (commit: %s, built: %s)", Version, Commit, Date)
}

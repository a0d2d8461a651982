package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit and BuildTime are set with ldflags, e.g.
// go build -ldflags "-X github.com/heartmarshall/dante-lexicon/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string shown in startup logs and /health.
// Without ldflags the commit and time come from the VCS stamp the Go
// toolchain embeds, when there is one.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	return formatVersion(Version, Commit, BuildTime, info)
}

func formatVersion(version, commit, built string, info *debug.BuildInfo) string {
	if info != nil {
		dirty := false
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "unknown" {
					commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if built == "unknown" {
					built = s.Value
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
		if dirty && commit != "unknown" {
			commit += "-dirty"
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

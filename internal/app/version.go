package app

import (
	"fmt"
	"runtime/debug"
)

// ServiceName identifies the binary in logs and on /health.
const ServiceName = "collections-moderation"

// Stamped at release time:
//
//	go build -ldflags "-X github.com/osfio/collections-moderation/internal/app.Version=v1.4.0 \
//	  -X github.com/osfio/collections-moderation/internal/app.Commit=$(git rev-parse --short HEAD)"
//
// When Commit is not stamped it falls back to the VCS revision recorded by
// the Go toolchain.
var (
	Version = "dev"
	Commit  = ""
)

// BuildVersion returns the version string reported in startup logs and /health,
// e.g. "collections-moderation v1.4.0 (3f2a9c1)".
func BuildVersion() string {
	return formatVersion(Version, resolveCommit(Commit, debug.ReadBuildInfo))
}

func formatVersion(version, commit string) string {
	if commit == "" {
		return fmt.Sprintf("%s %s", ServiceName, version)
	}
	return fmt.Sprintf("%s %s (%s)", ServiceName, version, commit)
}

func resolveCommit(stamped string, readInfo func() (*debug.BuildInfo, bool)) string {
	if stamped != "" {
		return stamped
	}
	info, ok := readInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

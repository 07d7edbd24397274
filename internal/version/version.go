// Package version holds build metadata for the cardex binary, set with
// ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/cardex/internal/version.Version=1.0.0 ..."
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version (e.g., "1.0.0" or "1.0.0-dev.5+abc123")
	Version = "dev"

	// Commit is the git commit SHA
	Commit = "unknown"

	// Dirty indicates if the working tree had uncommitted changes
	Dirty = "false"

	// BuildDate is the UTC build timestamp in RFC3339 format
	BuildDate = "unknown"
)

// Info contains structured version information.
type Info struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Dirty     bool     `json:"dirty"`
	BuildDate string   `json:"build_date"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Backends  []string `json:"backends,omitempty"`
}

// Get returns the current version information. backends lists the
// document backends compiled into the binary.
func Get(backends ...string) Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Backends:  backends,
	}
}

// String returns a single-line version string.
func String() string {
	if Dirty == "true" {
		return Version + "-dirty"
	}
	return Version
}

// Full returns a multi-line description of the build.
func (i Info) Full() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cardex %s\n", String())
	fmt.Fprintf(&sb, "  Commit:     %s\n", i.Commit)
	fmt.Fprintf(&sb, "  Built:      %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "  OS/Arch:    %s", i.Platform)
	if len(i.Backends) > 0 {
		fmt.Fprintf(&sb, "\n  Backends:   %s", strings.Join(i.Backends, ", "))
	}
	return sb.String()
}

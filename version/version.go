package version

import "fmt"

// These variables are set via ldflags during build:
//
//	-X github.com/philipparndt/gowaypoint/version.Version=v1.2.0
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date when they
// were stamped
func GetFullVersion() string {
	if GitCommit == "unknown" && BuildDate == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

// Package version holds build metadata injected with -ldflags.
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns the one-line form printed by -version.
func String() string {
	return fmt.Sprintf("%s (git %s, built %s)", Version, GitSHA, BuildTime)
}

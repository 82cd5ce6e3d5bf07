// Package version holds the build version, set with -ldflags at link time.
package version

var (
	// Version is the semantic version of the build.
	Version = "0.1.0"

	// GitCommit is the commit the build was made from.
	GitCommit = ""
)

// String returns the version with the commit when one is known.
func String() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}

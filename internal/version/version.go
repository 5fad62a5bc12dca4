// Package version carries build metadata injected via ldflags.
package version

var (
	// Version is the release of the minibus module and its binaries.
	Version = "v0.1.0"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// String renders the version with build metadata.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}

// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return Version + " (" + CommitHash + ", built " + BuildDate + ")"
}

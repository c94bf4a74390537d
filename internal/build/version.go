package build

// Populated via -ldflags at release time; the zero values identify a
// development build.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// UserAgent is the identification string sent with upstream requests when no
// explicit user agent is configured.
func UserAgent() string {
	return "liondine-api/" + Version
}

package version

// Version is overridden at build time with -ldflags "-X ...version.Version=v1.2.3".
var Version = "dev"

// Commit is the git commit the binary was built from.
var Commit = "unknown"

func String() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return Version + " (commit: " + Commit + ")"
}

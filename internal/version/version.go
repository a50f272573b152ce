// Package version holds build-time version info injected via ldflags.
//
// Set at compile time:
//
//	go build -ldflags "-X ptjobs/internal/version.tag=v0.1.0
//	  -X ptjobs/internal/version.commit=abc1234
//	  -X ptjobs/internal/version.date=2026-10-01"
package version

// Populated by -ldflags "-X ...". Defaults are used for local dev builds.
var (
	tag    = ""
	commit = "unknown"
	date   = "unknown"
)

// String returns a short version string: the tag, else the commit, else "dev".
func String() string {
	if tag != "" {
		return tag
	}
	if commit != "unknown" {
		return commit
	}
	return "dev"
}

// Full returns "tag (commit) built date" or a sensible fallback.
func Full() string {
	if tag != "" {
		return tag + " (" + commit + ") built " + date
	}
	if commit != "unknown" {
		return commit + " built " + date
	}
	return "dev"
}

// UserAgent is sent on every API request.
func UserAgent() string { return "ptjobs/" + String() }

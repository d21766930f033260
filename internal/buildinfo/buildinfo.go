// Package buildinfo holds version information injected at build time via ldflags:
//
//	-X github.com/goaltray/goaltray/internal/buildinfo.Version=1.2.0
package buildinfo

var (
	Version    = "dev"
	Codename   = "unknown"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Short returns the version with the commit, e.g. "1.2.0 (abc1234)".
func Short() string {
	commit := CommitHash
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + " (" + commit + ")"
}

// Package misc keeps build identity of the program.
package misc

// Set at build time with -ldflags "-X uidlc/misc.version=... -X uidlc/misc.gitHash=...".
var (
	version = "dev"
	gitHash = "unknown"
)

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}

func GetAppName() string {
	return "uidlc"
}

// Package version carries build-time stamped version metadata.
package version

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

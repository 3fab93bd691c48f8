// Package purr holds application-level metadata shared by the CLI and
// the HTTP API.
package purr

var (
	// Version is set by build flags.
	Version = "v0.1.0+dev"

	// Build timestamp is set by build flags.
	Build = "n/a"
)

// Package cmd implements the ilc subcommands: compile, fmt, init and repl.
//
// Commands receive their shared settings ([Options]) and the parsed
// [kong.Context] through the [context.Context] passed to Run.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)

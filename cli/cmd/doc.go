// Package cmd implements the pillar subcommands.
//
// Every command reads its kong context, standard streams, and --define
// constants from the [context.Context] it is run with; see [WithContext],
// [WithStreams], and [WithDefines].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file, without its extension.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the path
	// to the REPL history file.
	HistoryIdentifier = "history"
)

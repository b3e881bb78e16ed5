// Package cli wires together the Cobra command tree for the chunkprompt binary.
//
// It defines the root command and its subcommands (analyze, config, models,
// cache, version), binds flags, loads .env and configuration, runs the
// analysis pipeline, and maps the outcome to an exit code.
package cli

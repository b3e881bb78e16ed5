// Package config loads and merges chunkprompt configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CHUNKPROMPT_PROVIDER, CHUNKPROMPT_MODEL,
//     CHUNKPROMPT_CHUNK_SIZE, CHUNKPROMPT_FORMAT, CHUNKPROMPT_OUTPUT)
//  3. Config file ($XDG_CONFIG_HOME/chunkprompt/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// [SetField] to update a single key, and [Config.Validate] to reject settings
// the pipeline cannot run with.
package config

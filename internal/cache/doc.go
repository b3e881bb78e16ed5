// Package cache stores model completions on disk so repeated runs over the
// same file and prompt skip identical requests.
//
// Entries are keyed by a SHA-256 hash of the provider, model, generation
// parameters and message list. Each entry records the completion text, the
// reported token usage and its creation time; entries older than the TTL are
// treated as misses and removed on read.
//
// The default directory is $XDG_CACHE_HOME/chunkprompt (or the
// OS-appropriate equivalent). Failed completions are never cached.
package cache

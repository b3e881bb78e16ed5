// Package logging builds the zap logger used by chunkprompt.
//
// Every entry goes to the console. Entries tagged with a [Category] field are
// additionally routed to that category's append-only log file, so the full
// text of prompts sent to the model and results received from it can be kept
// out of the console while remaining on disk.
package logging

// Package analysis runs the chunked-analysis pipeline.
//
// A run refines the user's prompt into a chunk instruction and a compilation
// instruction, analyzes every chunk of the input file in order, and compiles
// the per-chunk analyses into one report that is handed to a [Sink].
//
// Failures are contained where partial work is still worth keeping. A chunk
// whose analysis cannot be obtained gets a fixed placeholder, and so does a
// report whose compilation fails. Missing input, a failed refinement, and a
// failed report write abort the run.
//
// Processing is strictly sequential: one model request is in flight at a
// time, and rate-limit backoff blocks the caller.
package analysis

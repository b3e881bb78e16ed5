// Chunkprompt analyzes text files that are too large for a single model
// request.
//
// It splits the file into fixed-size line chunks, asks the model to adapt the
// user's prompt for per-chunk use, analyzes every chunk in order, and compiles
// the chunk analyses into one report.
//
// Usage:
//
//	chunkprompt analyze --file server.log --prompt "summarize the errors"
//	chunkprompt analyze --file big.txt --prompt "list characters" --chunk-size 500 --format markdown
//	chunkprompt models doctor          # check provider credentials
//	chunkprompt config set provider anthropic
//	chunkprompt cache stats
//
// Credentials are read from the environment after loading a .env file from
// the working directory.
package main

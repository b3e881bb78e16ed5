package main

import (
	"os"

	"github.com/dshills/chunkprompt/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

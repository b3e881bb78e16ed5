package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes. Degraded chunks and a failed compilation still exit 0.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

var rootCmd = &cobra.Command{
	Use:          "chunkprompt",
	Short:        "Analyze large text files with an LLM, one chunk at a time",
	Long:         "chunkprompt splits a file into line chunks, analyzes each chunk with a refined prompt, and compiles the results into one report.",
	SilenceUsage: true,
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run loads .env from the working directory, executes the root command, and
// returns an exit code.
func Run() int {
	// A missing .env is normal; real environment variables still apply.
	_ = godotenv.Load()
	return execute(nil)
}

func execute(args []string) int {
	exitCode = ExitSuccess
	if args != nil {
		rootCmd.SetArgs(args)
	}
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitFailure
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print chunkprompt version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chunkprompt version %s\n", version)
	},
}

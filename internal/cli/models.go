package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/chunkprompt/internal/config"
	"github.com/dshills/chunkprompt/internal/providers"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Provider and model management",
}

type modelInfo struct {
	Provider string
	Models   []string
}

var knownModels = []modelInfo{
	{
		Provider: "openai",
		Models: []string{
			"gpt-4",
			"gpt-4o",
			"gpt-4o-mini",
			"gpt-4.1",
			"gpt-4.1-mini",
		},
	},
	{
		Provider: "anthropic",
		Models: []string{
			"claude-sonnet-4-5",
			"claude-opus-4-1",
			"claude-haiku-4-5",
		},
	},
	{
		Provider: "gemini",
		Models: []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
			"gemini-2.0-flash",
		},
	},
	{
		Provider: "ollama",
		Models: []string{
			"llama3.3",
			"llama3.1",
			"qwen2.5",
			"mistral",
		},
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known providers and models",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, info := range knownModels {
			fmt.Fprintf(out, "%s:\n", info.Provider)
			for _, m := range info.Models {
				fmt.Fprintf(out, "  - %s\n", m)
			}
			fmt.Fprintln(out)
		}
	},
}

var (
	flagDoctorProvider string
	flagDoctorModel    string
)

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate provider credentials with a one-token request",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		if flagDoctorProvider != "" {
			overrides["provider"] = flagDoctorProvider
		}
		if flagDoctorModel != "" {
			overrides["model"] = flagDoctorModel
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
		fmt.Fprintf(out, "Checking %s (%s)...\n", cfg.Provider, cfg.Model)

		p, err := newCompleter(cfg.Provider, cfg.Model)
		if err != nil {
			fmt.Fprintf(errOut, "FAIL: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err = p.Complete(ctx, providers.CompletionRequest{
			Model: cfg.Model,
			Messages: []providers.Message{
				{Role: providers.RoleSystem, Content: "Respond with exactly: ok"},
				{Role: providers.RoleUser, Content: "ping"},
			},
			MaxTokens: 10,
			N:         1,
		})
		if err != nil {
			switch {
			case providers.IsAuthError(err):
				fmt.Fprintf(errOut, "FAIL: credentials rejected: %v\n", err)
			case providers.IsRateLimit(err):
				fmt.Fprintf(errOut, "FAIL: credentials accepted but rate limited: %v\n", err)
			default:
				fmt.Fprintf(errOut, "FAIL: %v\n", err)
			}
			exitCode = ExitFailure
			return nil
		}

		fmt.Fprintf(out, "OK: %s is configured and responding\n", cfg.Provider)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)
	modelsDoctorCmd.Flags().StringVar(&flagDoctorProvider, "provider", "", "Provider to check")
	modelsDoctorCmd.Flags().StringVar(&flagDoctorModel, "model", "", "Model to check")
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/prompt"
	"github.com/zjrosen/signup/internal/tracing"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill in the registration form with line prompts",
	Long: `Ask for each field in turn without the full-screen form. Answers are
checked with the same rules as the form and re-asked until they pass.`,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().String("locale", "",
		"message language: en or pt-BR (overrides form.locale)")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	_, cleanup, err := setupLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg.Tracing.Writer = cmd.OutOrStdout()
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdownTracing(provider)

	ctrl, err := newController(cfg, provider)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	err = prompt.Run(cmd.Context(), prompt.NewSurveyDriver(), ctrl, cmd.OutOrStdout())
	if errors.Is(err, prompt.ErrAborted) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
		return nil
	}
	return err
}

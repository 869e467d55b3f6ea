package main

import (
	"github.com/jonathan/content-calendar/internal/strategy"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt that generate would send",
	Long:  "Builds the strategist prompt from the brand brief and prints it without contacting the generation service.",
	RunE:  runPrompt,
}

var (
	promptInputs formInputs
	promptOutput string
)

func init() {
	addFormFlags(promptCmd, &promptInputs)
	promptCmd.Flags().StringVarP(&promptOutput, "out", "o", "", "Output file (defaults to stdout)")

	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	form, err := promptInputs.form(cmd.Context())
	if err != nil {
		return err
	}
	return writeOutput(cmd, promptOutput, []byte(strategy.BuildPrompt(form)+"\n"))
}

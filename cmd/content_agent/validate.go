package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/content-calendar/internal/observability"
	"github.com/jonathan/content-calendar/internal/schemas"
	"github.com/jonathan/content-calendar/internal/strategy"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a saved strategy JSON file",
	Long: `Checks a strategy JSON file against the content strategy schema (or a custom schema via --schema).
With --verbose a summary of the strategy is printed when it is valid.`,
	RunE: runValidate,
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to strategy JSON file (required)")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file (defaults to the built-in strategy schema)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(validateInput); os.IsNotExist(err) {
		return fmt.Errorf("strategy file not found: %s", validateInput)
	}

	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateInput)
	} else {
		err = schemas.ValidateFile(strategy.JSONSchema(), validateInput)
	}
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), validationErr.Error())
			return fmt.Errorf("%s does not match the schema (%d errors)", validateInput, len(validationErr.Errors))
		}
		return err
	}

	if verbose && validateSchema == "" {
		content, err := os.ReadFile(validateInput)
		if err != nil {
			return fmt.Errorf("failed to read strategy file: %w", err)
		}
		result, err := strategy.ParseResponse(string(content))
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.ErrOrStderr()).PrintStrategy(result)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", validateInput)
	return nil
}

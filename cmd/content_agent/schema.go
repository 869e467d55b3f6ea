package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/content-calendar/internal/strategy"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of a content strategy",
	Long: `Prints the JSON Schema (draft-07) that every generated strategy is validated against.
Use --fields to list the dotted leaf field paths instead.`,
	RunE: runSchema,
}

var (
	schemaOutput string
	schemaFields bool
)

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "out", "o", "", "Output file (defaults to stdout)")
	schemaCmd.Flags().BoolVar(&schemaFields, "fields", false, "List leaf field paths, one per line")

	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if schemaFields {
		var out []byte
		for _, field := range strategy.ResponseSchema().Fields() {
			out = append(out, field...)
			out = append(out, '\n')
		}
		return writeOutput(cmd, schemaOutput, out)
	}

	data, err := json.MarshalIndent(strategy.JSONSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	return writeOutput(cmd, schemaOutput, append(data, '\n'))
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/content-calendar/internal/ingestion"
	"github.com/jonathan/content-calendar/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// formInputs holds the text-or-file flag pairs for the three form fields,
// plus an optional brand website whose text is appended to the brand information
type formInputs struct {
	brand      string
	brandFile  string
	brandURL   string
	params     string
	paramsFile string
	assets     string
	assetsFile string
}

func addFormFlags(cmd *cobra.Command, in *formInputs) {
	cmd.Flags().StringVar(&in.brand, "brand", "", "Brand information (company, audience, voice, goals)")
	cmd.Flags().StringVar(&in.brandFile, "brand-file", "", "Path to a text file with the brand information")
	cmd.Flags().StringVar(&in.brandURL, "brand-url", "", "Brand website whose text is appended to the brand information")
	cmd.Flags().StringVar(&in.params, "params", "", "Content parameters (platforms, cadence, campaigns)")
	cmd.Flags().StringVar(&in.paramsFile, "params-file", "", "Path to a text file with the content parameters")
	cmd.Flags().StringVar(&in.assets, "assets", "", "Current content assets (optional)")
	cmd.Flags().StringVar(&in.assetsFile, "assets-file", "", "Path to a text file describing current assets (optional)")

	cmd.MarkFlagsMutuallyExclusive("brand", "brand-file")
	cmd.MarkFlagsMutuallyExclusive("params", "params-file")
	cmd.MarkFlagsMutuallyExclusive("assets", "assets-file")
}

// form resolves the flags into a FormState; inline text wins over a file path
func (in *formInputs) form(ctx context.Context) (types.FormState, error) {
	var (
		form types.FormState
		err  error
	)
	if form.BrandInfo, err = readInput(in.brand, in.brandFile); err != nil {
		return form, err
	}
	if in.brandURL != "" {
		page, err := ingestion.FromURL(ctx, in.brandURL, nil)
		if err != nil {
			return form, fmt.Errorf("failed to import brand website: %w", err)
		}
		logger.Debug("imported brand website",
			zap.String("url", page.URL),
			zap.Int("chars", len(page.Text)),
			zap.Bool("truncated", page.Truncated))
		form.BrandInfo = page.AppendTo(form.BrandInfo)
	}
	if form.ContentParams, err = readInput(in.params, in.paramsFile); err != nil {
		return form, err
	}
	if form.CurrentAssets, err = readInput(in.assets, in.assetsFile); err != nil {
		return form, err
	}
	return form, nil
}

// readInput returns the inline text or the file contents, both passed through unchanged
func readInput(inline, path string) (string, error) {
	if inline != "" || path == "" {
		return inline, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(content), nil
}

// writeOutput writes data to path, creating parent directories, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

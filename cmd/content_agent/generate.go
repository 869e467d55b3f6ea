package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/content-calendar/internal/config"
	"github.com/jonathan/content-calendar/internal/observability"
	"github.com/jonathan/content-calendar/internal/rendering"
	"github.com/jonathan/content-calendar/internal/strategy"
	"github.com/jonathan/content-calendar/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Built-in defaults, lowest precedence after environment variables
const (
	defaultTimeoutSeconds = 120
	defaultPort           = 8080
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a content strategy and 30-day calendar",
	Long: `Builds the strategist prompt from the brand brief, sends one structured-output request and
prints the validated strategy.

Configuration can be loaded from a JSON or YAML file using --config. Command-line flags override
config file values, which override GEMINI_API_KEY / CONTENT_AGENT_* environment variables.`,
	Example: `  content_agent generate --brand-file brand.txt --params "Instagram + LinkedIn, launch in March" --format markdown
  content_agent generate --config campaign.yaml --out strategy.json`,
	RunE: runGenerate,
}

var (
	generateInputs      formInputs
	generateConfigPath  string
	generateAPIKey      string
	generateProvider    string
	generateModel       string
	generateTemperature float32
	generateFormat      string
	generateOutput      string
	generateTimeout     int
)

// newGenerator is replaced in tests
var newGenerator = func(ctx context.Context, cfg strategy.Config) (*strategy.Generator, error) {
	return strategy.New(ctx, cfg)
}

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")

	addFormFlags(generateCmd, &generateInputs)

	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "API key (optional, defaults to GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "Generation provider: gemini (default) or openai")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Model name override")
	generateCmd.Flags().Float32Var(&generateTemperature, "temperature", 0, "Sampling temperature (0-2)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Output format: json (default), markdown, html or csv")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Output file (defaults to stdout)")
	generateCmd.Flags().IntVar(&generateTimeout, "timeout", 0, fmt.Sprintf("Request timeout in seconds (default %d)", defaultTimeoutSeconds))

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveGenerateConfig(cmd)
	if err != nil {
		return err
	}

	inputs := formInputs{
		brand:      generateInputs.brand,
		brandFile:  cfg.BrandFile,
		brandURL:   cfg.BrandURL,
		params:     generateInputs.params,
		paramsFile: cfg.ParamsFile,
		assets:     generateInputs.assets,
		assetsFile: cfg.AssetsFile,
	}
	form, err := inputs.form(cmd.Context())
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return fmt.Errorf("brand information (--brand/--brand-file/--brand-url) and content parameters (--params/--params-file) are required: %w", err)
	}

	llmConfig, err := cfg.LLMConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	generator, err := newGenerator(ctx, strategy.Config{
		APIKey: cfg.APIKey,
		LLM:    llmConfig,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := generator.Close(); err != nil {
			logger.Warn("failed to close generation client", zap.Error(err))
		}
	}()

	showProgress := verbose || cfg.Verbose
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if showProgress {
		printer.PrintRequest(form, generator.Model())
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	start := time.Now()
	result, err := generator.Generate(ctx, form)
	if err != nil {
		if showProgress {
			printer.PrintFailure(err)
		}
		return err
	}
	logger.Debug("strategy ready", zap.Duration("elapsed", time.Since(start)))

	if showProgress {
		printer.PrintStrategy(result)
	}

	data, err := formatStrategy(result, cfg.Format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, cfg.Output, data); err != nil {
		return err
	}
	if cfg.Output != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Strategy written to %s\n", cfg.Output)
	}
	return nil
}

// resolveGenerateConfig layers flags over the config file over the environment over built-in defaults
func resolveGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if generateConfigPath != "" {
		loaded, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		logger.Debug("loaded config", zap.String("path", generateConfigPath))
	}

	// Step 2: Apply CLI overrides (only flags that were explicitly set)
	flags := cmd.Flags()
	if flags.Changed("brand-file") {
		cfg.BrandFile = generateInputs.brandFile
	}
	if flags.Changed("brand-url") {
		cfg.BrandURL = generateInputs.brandURL
	}
	if flags.Changed("params-file") {
		cfg.ParamsFile = generateInputs.paramsFile
	}
	if flags.Changed("assets-file") {
		cfg.AssetsFile = generateInputs.assetsFile
	}
	if flags.Changed("api-key") {
		cfg.APIKey = generateAPIKey
	}
	if flags.Changed("provider") {
		cfg.Provider = generateProvider
	}
	if flags.Changed("model") {
		cfg.Model = generateModel
	}
	if flags.Changed("temperature") {
		temperature := generateTemperature
		cfg.Temperature = &temperature
	}
	if flags.Changed("format") {
		cfg.Format = generateFormat
	}
	if flags.Changed("out") {
		cfg.Output = generateOutput
	}
	if flags.Changed("timeout") {
		cfg.Timeout = generateTimeout
	}

	// Step 3: Fill the gaps from the environment, then built-in defaults
	defaults := config.FromEnv()
	defaults = defaults.MergeWithDefaults(config.Config{
		Format:  config.FormatJSON,
		Timeout: defaultTimeoutSeconds,
		Port:    defaultPort,
	})
	cfg = cfg.MergeWithDefaults(defaults)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// formatStrategy renders the strategy in one of the config.Format* formats
func formatStrategy(result *types.ContentStrategy, format string) ([]byte, error) {
	switch format {
	case config.FormatMarkdown:
		return []byte(rendering.RenderMarkdown(result)), nil
	case config.FormatHTML:
		return rendering.RenderHTML(result)
	case config.FormatCSV:
		var buf bytes.Buffer
		if err := rendering.WriteCalendarCSV(&buf, result.Calendar); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case config.FormatJSON, "":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal strategy: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/jonathan/content-calendar/internal/config"
	"github.com/jonathan/content-calendar/internal/server"
	"github.com/jonathan/content-calendar/internal/strategy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the generator:

  POST /strategy          generate a strategy (JSON)
  POST /strategy/render   generate and render (?format=markdown|html|csv|json)
  POST /strategy/stream   generate with Server-Sent Events progress
  POST /prompt            show the prompt for a form
  GET  /schema            JSON Schema of a strategy
  GET  /health            liveness

Rate limits are configured with RATE_LIMIT_* environment variables.`,
	RunE: runServe,
}

var (
	servePort       int
	serveConfigPath string
	serveAPIKey     string
	serveProvider   string
	serveModel      string
	serveTimeout    int
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", defaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON or YAML config file")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "API key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "Generation provider: gemini (default) or openai")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Model name override")
	serveCmd.Flags().IntVar(&serveTimeout, "timeout", 0, fmt.Sprintf("Per-request generation timeout in seconds (default %d)", defaultTimeoutSeconds))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if flags.Changed("provider") {
		cfg.Provider = serveProvider
	}
	if flags.Changed("model") {
		cfg.Model = serveModel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = serveTimeout
	}

	defaults := config.FromEnv()
	defaults = defaults.MergeWithDefaults(config.Config{Timeout: defaultTimeoutSeconds, Port: defaultPort})
	cfg = cfg.MergeWithDefaults(defaults)
	// Applied after the merge so that --port 0 (any free port) survives it.
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
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

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		Generator:       generator,
		Logger:          logger,
		GenerateTimeout: time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting content_agent API",
		zap.Int("port", cfg.Port),
		zap.String("model", generator.Model()))
	return srv.Start(ctx)
}

// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/content-calendar/internal/llm"
	"gopkg.in/yaml.v3"
)

// Output formats supported by the generate command and the render endpoint
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatCSV      = "csv"
)

// Environment variables read by FromEnv
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvLegacyAPIKey = "API_KEY"
	EnvProvider     = "CONTENT_AGENT_PROVIDER"
	EnvModel        = "CONTENT_AGENT_MODEL"
)

// Config represents settings that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	BrandFile  string `json:"brand_file,omitempty" yaml:"brand_file,omitempty"`   // Path to brand information text
	BrandURL   string `json:"brand_url,omitempty" yaml:"brand_url,omitempty"`     // Brand website appended to the brand information
	ParamsFile string `json:"params_file,omitempty" yaml:"params_file,omitempty"` // Path to content parameters text
	AssetsFile string `json:"assets_file,omitempty" yaml:"assets_file,omitempty"` // Path to current assets text

	// Generation service
	APIKey      string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`         // Generation service API key
	Provider    string   `json:"provider,omitempty" yaml:"provider,omitempty"`       // gemini (default) or openai
	Model       string   `json:"model,omitempty" yaml:"model,omitempty"`             // Overrides the standard-tier model
	Temperature *float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"` // Sampling temperature
	Timeout     int      `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`

	// Output
	Format  string `json:"format,omitempty" yaml:"format,omitempty"` // json, markdown, html or csv
	Output  string `json:"out,omitempty" yaml:"out,omitempty"`       // Output file; stdout when empty
	Verbose bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the extension is .yaml/.yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv returns the settings available from the process environment.
// GEMINI_API_KEY wins over the legacy API_KEY.
func FromEnv() Config {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		apiKey = os.Getenv(EnvLegacyAPIKey)
	}
	return Config{
		APIKey:   apiKey,
		Provider: os.Getenv(EnvProvider),
		Model:    os.Getenv(EnvModel),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Format {
	case "", FormatJSON, FormatMarkdown, FormatHTML, FormatCSV:
	default:
		return fmt.Errorf("config error: 'format' must be one of json, markdown, html, csv (got %q)", c.Format)
	}

	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.BrandURL != "" {
		if u, err := url.Parse(c.BrandURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config error: 'brand_url' must be an http or https URL")
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for name, path := range map[string]string{
		"brand_file":  c.BrandFile,
		"params_file": c.ParamsFile,
		"assets_file": c.AssetsFile,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer a config file over environment values and built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BrandFile == "" {
		result.BrandFile = defaults.BrandFile
	}
	if result.BrandURL == "" {
		result.BrandURL = defaults.BrandURL
	}
	if result.ParamsFile == "" {
		result.ParamsFile = defaults.ParamsFile
	}
	if result.AssetsFile == "" {
		result.AssetsFile = defaults.AssetsFile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMConfig builds the model configuration described by c
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}

	cfg := llm.ConfigFor(provider)
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	if c.Temperature != nil {
		cfg.Temperature = *c.Temperature
	}
	return cfg, nil
}

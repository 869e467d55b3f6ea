package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvIdleTTL         = "RATE_LIMIT_IDLE_TTL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
	EnvStrategyPerHour = "RATE_LIMIT_STRATEGY_PER_HOUR"
)

// EndpointConfig overrides the default limit for one route and everything below it.
type EndpointConfig struct {
	Path   string        // Route prefix, matched on whole path segments
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig builds a Config from the RATE_LIMIT_* environment variables.
// Unparseable or non-positive values fall back to the defaults.
func LoadConfig() *Config {
	if !envValue(EnvEnabled, true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envValue(EnvDefaultLimit, 600, positiveInt),
		DefaultWindow:   envValue(EnvDefaultWindow, time.Minute, positiveDuration),
		CleanupInterval: envValue(EnvCleanupInterval, 5*time.Minute, positiveDuration),
		IdleTTL:         envValue(EnvIdleTTL, time.Hour, positiveDuration),
		Whitelist:       parseIPList(os.Getenv(EnvWhitelist)),
		Blacklist:       parseIPList(os.Getenv(EnvBlacklist)),
		EndpointConfigs: DefaultEndpointConfigs(envValue(EnvStrategyPerHour, 20, positiveInt)),
	}
}

// DefaultEndpointConfigs returns the route limits. strategyPerHour bounds the requests
// that reach the generation service; every route under /strategy draws from it.
func DefaultEndpointConfigs(strategyPerHour int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/strategy", Method: "POST", Limit: strategyPerHour, Window: time.Hour, Burst: 3},
		{Path: "/prompt", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		return fallback
	}
	return value
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err == nil && n <= 0 {
		err = strconv.ErrRange
	}
	return n, err
}

func positiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err == nil && d <= 0 {
		err = strconv.ErrRange
	}
	return d, err
}

// parseIPList turns a comma-separated list into a set, skipping blanks.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}

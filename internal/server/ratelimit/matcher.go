package ratelimit

import "strings"

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// A config path matches itself and everything below it, so "/strategy"
// also covers "/strategy/render" but not "/strategyx".
// GET /health is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: "/health", Method: "GET"}
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method || !pathCovers(config.Path, path) {
			continue
		}
		// Longest match wins.
		if best == nil || len(config.Path) > len(best.Path) {
			best = config
		}
	}
	return best
}

func pathCovers(prefix, path string) bool {
	if prefix == path {
		return true
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return strings.HasPrefix(path, prefix+"/")
}

package ratelimit

import (
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromSettings builds a limiter configuration from the service settings,
// using the default endpoint tiers.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: batch operations (strictest limits)
		{Path: "/workflow/bulk", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},

		// Tier 2: write operations (moderate limits)
		{Path: "/workflow/initiate/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/workflow/transition", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/interviews", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/interviews/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/interviews/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 3: read operations - handled by default limit
		// Tier 4: health check (unlimited) - handled by special case in matcher
	}
}

// toSet converts a list of client identifiers into a lookup set.
func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			result[item] = true
		}
	}
	return result
}

package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one path (or path prefix) and method.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // bucket capacity, Limit when 0
}

// LoadConfig reads rate limiting settings from RATE_LIMIT_* environment
// variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	parseLimit := getEnvInt("RATE_LIMIT_PARSE_LIMIT", 20)

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(parseLimit),
	}
}

// DefaultEndpointConfigs limits model-backed parsing per hour and document
// writes per minute. Reads and validation use the default limit.
func DefaultEndpointConfigs(parseLimit int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/parse", Method: "POST", Limit: parseLimit, Window: time.Hour, Burst: 3},

		{Path: "/normalize", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/workspaces", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/workspaces/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/workspaces/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList splits a comma-separated list into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

// ABOUTME: Environment variable helper functions for config loading
// ABOUTME: Provides typed getters with default values

package config

import (
	"os"
	"strings"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ensureScheme prepends https:// when a URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}

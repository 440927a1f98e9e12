// ABOUTME: Configuration loader for the shopper CLI
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

type Config struct {
	// Core service (shop lists, items, flyer search)
	CoreAPIURL string

	// Authorization server
	AuthAPIURL   string
	ClientID     string
	ClientSecret string
	Scopes       []string

	// Loopback address the callback server binds during login
	CallbackAddr string
}

func Load() (*Config, error) {
	// .env is optional; real environment always wins
	_ = godotenv.Load()

	cfg := &Config{
		CoreAPIURL:   ensureScheme(getEnv("SHOPPER_CORE_API_URL", "http://localhost:8080")),
		AuthAPIURL:   ensureScheme(getEnv("SHOPPER_AUTH_API_URL", "http://localhost:9096")),
		ClientID:     getEnv("SHOPPER_CLIENT_ID", ""),
		ClientSecret: getEnv("SHOPPER_CLIENT_SECRET", ""),
		Scopes:       strings.Fields(getEnv("SHOPPER_SCOPES", "profile shoplist search")),
		CallbackAddr: getEnv("SHOPPER_CALLBACK_ADDR", "127.0.0.1:8910"),
	}

	return cfg, nil
}

// RedirectURL is the loopback callback URL registered with the auth server.
func (c *Config) RedirectURL() string {
	return fmt.Sprintf("http://%s/callback", c.CallbackAddr)
}

// OAuth builds the oauth2 client configuration for the authorization server.
// AuthStyleInParams keeps client credentials in the form body, which is what
// the auth server's token endpoint expects.
func (c *Config) OAuth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL(),
		Scopes:       c.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthAPIURL + "/auth/authorize",
			TokenURL:  c.AuthAPIURL + "/auth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

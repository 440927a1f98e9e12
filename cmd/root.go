// ABOUTME: Root command for the shopper CLI
// ABOUTME: Handles global flags and shared construction of config, session, and client

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/config"
	"github.com/kdjuwidja/shopper-cli/internal/logger"
	"github.com/kdjuwidja/shopper-cli/internal/session"
)

var (
	coreURL    string
	jsonOutput bool
)

// rootCmd is the base command; with no subcommand it launches the TUI
var rootCmd = &cobra.Command{
	Use:   "shopper",
	Short: "Terminal client for the Shopper grocery service",
	Long: `shopper is a terminal client for the Shopper grocery shopping-list service.

Run without arguments for the interactive UI, or use subcommands for
scripting. Login uses your browser; tokens are kept in the config directory.

Environment Variables:
  SHOPPER_CORE_API_URL   Core API URL (default: http://localhost:8080)
  SHOPPER_AUTH_API_URL   Authorization server URL (default: http://localhost:9096)
  SHOPPER_CLIENT_ID      OAuth client id (required for login)
  SHOPPER_CLIENT_SECRET  OAuth client secret (required for login)
  SHOPPER_CALLBACK_ADDR  Loopback callback address (default: 127.0.0.1:8910)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() error {
	logger.Init()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&coreURL, "core-url", "", "Core API URL (overrides SHOPPER_CORE_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig loads env config and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if coreURL != "" {
		cfg.CoreAPIURL = coreURL
	}
	return cfg, nil
}

// newStore returns the durable session store
func newStore() session.Store {
	return session.NewFileStore(session.DefaultConfigDir())
}

// newClient builds a core API client over the durable session store
func newClient() (*client.Client, session.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store := newStore()
	return client.New(cfg.CoreAPIURL, store), store, nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// ABOUTME: Launches the interactive TUI when no subcommand is given
// ABOUTME: Runs the login flow first if no session is stored

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kdjuwidja/shopper-cli/internal/auth"
	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/session"
	"github.com/kdjuwidja/shopper-cli/internal/tui"
	"github.com/kdjuwidja/shopper-cli/internal/tui/debuglog"
)

// runTUI logs in if needed, then starts the interactive UI
func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := newStore()

	if err := debuglog.Init(session.DefaultConfigDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debuglog.Close()

	if store.AccessToken() == "" {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		flow, err := auth.NewFlow(cfg, store, os.Stdout)
		if err != nil {
			return err
		}

		fmt.Println("Opening your browser to log in...")
		if err := flow.Run(ctx, ""); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Println("Login successful.")
	}

	c := client.New(cfg.CoreAPIURL, store)
	return tui.Run(c, store)
}

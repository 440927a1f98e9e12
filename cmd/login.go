// ABOUTME: Login command running the browser-based OAuth flow
// ABOUTME: Opens the authorize URL and waits for the loopback callback

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kdjuwidja/shopper-cli/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in through your browser",
	Long:  `Open the authorization server in your browser and complete the login. Tokens are stored in the config directory until logout or expiry.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	store := newStore()
	if store.AccessToken() != "" {
		fmt.Fprintln(w, "Already logged in.")
		return 0
	}

	flow, err := auth.NewFlow(cfg, store, w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Opening your browser to log in...")
	if err := flow.Run(ctx, ""); err != nil {
		fmt.Fprintf(w, "Login failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(w, "Login successful.")
	return 0
}

// ABOUTME: Profile commands for the shopper CLI
// ABOUTME: Shows and updates the user profile (nickname and postal code)

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kdjuwidja/shopper-cli/internal/client"
)

var (
	profileNickname   string
	profilePostalCode string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your user profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runProfile(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update your profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runProfileSet(ctx, os.Stdout, profileNickname, profilePostalCode); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileNickname, "nickname", "", "Display name (required)")
	profileSetCmd.Flags().StringVar(&profilePostalCode, "postal-code", "", "Postal code, e.g. A1B2C3 (required)")
	profileSetCmd.MarkFlagRequired("nickname")
	profileSetCmd.MarkFlagRequired("postal-code")

	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfile fetches and prints the profile, returning an exit code
func runProfile(ctx context.Context, w io.Writer) int {
	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	profile, err := c.FetchProfile(ctx)
	if errors.Is(err, client.ErrProfileNotFound) {
		fmt.Fprintln(w, "No profile yet. Create one with 'shopper profile set'.")
		return 2
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Nickname:    %s\nPostal code: %s\n", profile.Nickname, profile.PostalCode)
	return 0
}

// runProfileSet validates input locally, then saves the profile
func runProfileSet(ctx context.Context, w io.Writer, nickname, postalCode string) int {
	if nickname == "" {
		fmt.Fprintln(w, "Error: nickname must not be empty")
		return 2
	}
	if !client.ValidPostalCode(postalCode) {
		fmt.Fprintln(w, "Error: invalid postal code format, expected letters and digits alternating (e.g. A1B2C3)")
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	profile, err := c.SaveProfile(ctx, nickname, postalCode)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Profile saved for %s.\n", profile.Nickname)
	return 0
}

// ABOUTME: Flyer search command for the shopper CLI
// ABOUTME: Searches current flyer deals by product name

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kdjuwidja/shopper-cli/internal/client"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search flyer deals by product name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		term := strings.Join(args, " ")
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runSearch(ctx, w, term)
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(ctx context.Context, w io.Writer, term string) int {
	if strings.TrimSpace(term) == "" {
		fmt.Fprintln(w, "Error: search term must not be empty")
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	flyers, err := c.SearchFlyers(ctx, term)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(flyers, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(flyers) == 0 {
		fmt.Fprintf(w, "No flyer deals for %q.\n", term)
		return 0
	}
	for _, flyer := range flyers {
		fmt.Fprintln(w, formatFlyer(flyer))
	}
	return 0
}

// formatFlyer renders one flyer deal on a single line
func formatFlyer(f client.Flyer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-20s %s", f.Store, f.ProductName)
	if f.Brand != "" {
		fmt.Fprintf(&sb, " (%s)", f.Brand)
	}
	if price := flyerPrice(f); price != "" {
		fmt.Fprintf(&sb, "  %s", price)
	}
	if window := f.ValidityWindow(); window != "" {
		fmt.Fprintf(&sb, "  [%s]", window)
	}
	return sb.String()
}

// flyerPrice joins the price text fragments around the numeric price
func flyerPrice(f client.Flyer) string {
	parts := make([]string, 0, 3)
	if f.PrePriceText != "" {
		parts = append(parts, f.PrePriceText)
	}
	if f.PriceText != "" {
		parts = append(parts, f.PriceText)
	}
	if f.PostPriceText != "" {
		parts = append(parts, f.PostPriceText)
	}
	return strings.Join(parts, " ")
}

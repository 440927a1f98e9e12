// ABOUTME: Entry point for the shopper CLI
// ABOUTME: Terminal client for the Shopper grocery shopping-list service

package main

import (
	"fmt"
	"os"

	"github.com/kdjuwidja/shopper-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ABOUTME: Item commands for the shopper CLI
// ABOUTME: Add, edit, mark bought, and remove items in a shop list

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kdjuwidja/shopper-cli/internal/client"
)

var (
	itemBrand     string
	itemNote      string
	itemThumbnail string

	itemEditName  string
	itemEditBrand string
	itemEditNote  string

	itemUndone bool
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage items in a shop list",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <list-id> <name>",
	Short: "Add an item to a shop list",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args[1:], " ")
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runItemAdd(ctx, w, args[0], name)
		})
	},
}

var itemEditCmd = &cobra.Command{
	Use:   "edit <list-id> <item-id>",
	Short: "Edit an item's name, brand, or note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runItemEdit(ctx, w, args[0], args[1])
		})
	},
}

var itemDoneCmd = &cobra.Command{
	Use:   "done <list-id> <item-id>",
	Short: "Mark an item as bought",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runItemDone(ctx, w, args[0], args[1], !itemUndone)
		})
	},
}

var itemRemoveCmd = &cobra.Command{
	Use:   "remove <list-id> <item-id>",
	Short: "Remove an item from a shop list",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runItemRemove(ctx, w, args[0], args[1])
		})
	},
}

func init() {
	itemAddCmd.Flags().StringVar(&itemBrand, "brand", "", "Brand name")
	itemAddCmd.Flags().StringVar(&itemNote, "note", "", "Extra information")
	itemAddCmd.Flags().StringVar(&itemThumbnail, "thumbnail", "", "Thumbnail image URL")

	itemEditCmd.Flags().StringVar(&itemEditName, "name", "", "New item name")
	itemEditCmd.Flags().StringVar(&itemEditBrand, "brand", "", "New brand name")
	itemEditCmd.Flags().StringVar(&itemEditNote, "note", "", "New extra information")

	itemDoneCmd.Flags().BoolVar(&itemUndone, "undone", false, "Mark as not bought instead")

	itemCmd.AddCommand(itemAddCmd, itemEditCmd, itemDoneCmd, itemRemoveCmd)
	rootCmd.AddCommand(itemCmd)
}

// parseItemID converts an item id argument, printing the error on failure
func parseItemID(w io.Writer, arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid item id %q\n", arg)
		return 0, false
	}
	return id, true
}

func runItemAdd(ctx context.Context, w io.Writer, listArg, name string) int {
	listID, ok := parseListID(w, listArg)
	if !ok {
		return 2
	}
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(w, "Error: item name must not be empty")
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	input := client.ItemInput{
		ItemName:  name,
		BrandName: itemBrand,
		ExtraInfo: itemNote,
		Thumbnail: itemThumbnail,
	}
	if err := c.AddItem(ctx, listID, input); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Added %q.\n", name)
	return 0
}

func runItemEdit(ctx context.Context, w io.Writer, listArg, itemArg string) int {
	listID, ok := parseListID(w, listArg)
	if !ok {
		return 2
	}
	itemID, ok := parseItemID(w, itemArg)
	if !ok {
		return 2
	}

	patch := client.ItemPatch{}
	if itemEditName != "" {
		patch.ItemName = &itemEditName
	}
	if itemEditBrand != "" {
		patch.BrandName = &itemEditBrand
	}
	if itemEditNote != "" {
		patch.ExtraInfo = &itemEditNote
	}
	if patch.ItemName == nil && patch.BrandName == nil && patch.ExtraInfo == nil {
		fmt.Fprintln(w, "Error: nothing to change, pass --name, --brand, or --note")
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := c.EditItem(ctx, listID, itemID, patch); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Item updated.")
	return 0
}

func runItemDone(ctx context.Context, w io.Writer, listArg, itemArg string, bought bool) int {
	listID, ok := parseListID(w, listArg)
	if !ok {
		return 2
	}
	itemID, ok := parseItemID(w, itemArg)
	if !ok {
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	patch := client.ItemPatch{IsBought: &bought}
	if err := c.EditItem(ctx, listID, itemID, patch); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if bought {
		fmt.Fprintln(w, "Marked as bought.")
	} else {
		fmt.Fprintln(w, "Marked as not bought.")
	}
	return 0
}

func runItemRemove(ctx context.Context, w io.Writer, listArg, itemArg string) int {
	listID, ok := parseListID(w, listArg)
	if !ok {
		return 2
	}
	itemID, ok := parseItemID(w, itemArg)
	if !ok {
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := c.RemoveItem(ctx, listID, itemID); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Item removed.")
	return 0
}

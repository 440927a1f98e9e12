// ABOUTME: Shop list commands for the shopper CLI
// ABOUTME: List, create, show, join, leave, share, and member operations

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kdjuwidja/shopper-cli/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your shop lists",
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListAll(ctx, w)
		})
	},
}

var listCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new shop list",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListCreate(ctx, w, name)
		})
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one shop list with its items",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListShow(ctx, w, args[0])
		})
	},
}

var listJoinCmd = &cobra.Command{
	Use:   "join <share-code>",
	Short: "Join a shared shop list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListJoin(ctx, w, args[0])
		})
	},
}

var listLeaveCmd = &cobra.Command{
	Use:   "leave <id>",
	Short: "Leave a shop list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListLeave(ctx, w, args[0])
		})
	},
}

var listShareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Request a share code for a shop list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListShare(ctx, w, args[0])
		})
	},
}

var listRevokeCmd = &cobra.Command{
	Use:   "revoke <id>",
	Short: "Revoke the share code of a shop list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListRevoke(ctx, w, args[0])
		})
	},
}

var listMembersCmd = &cobra.Command{
	Use:   "members <id>",
	Short: "Show the members of a shop list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runListSubcommand(func(ctx context.Context, w io.Writer) int {
			return runListMembers(ctx, w, args[0])
		})
	},
}

func init() {
	listCmd.AddCommand(listCreateCmd, listShowCmd, listJoinCmd, listLeaveCmd, listShareCmd, listRevokeCmd, listMembersCmd)
	rootCmd.AddCommand(listCmd)
}

// runListSubcommand wraps a list operation with signal handling and exit code
func runListSubcommand(run func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if exitCode := run(ctx, os.Stdout); exitCode != 0 {
		os.Exit(exitCode)
	}
}

// parseListID converts a list id argument, printing the error on failure
func parseListID(w io.Writer, arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid shop list id %q\n", arg)
		return 0, false
	}
	return id, true
}

func runListAll(ctx context.Context, w io.Writer) int {
	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	lists, err := c.ShopLists(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(lists, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(lists) == 0 {
		fmt.Fprintln(w, "No shop lists. Create one with 'shopper list create'.")
		return 0
	}
	for _, list := range lists {
		fmt.Fprintf(w, "%4d  %-24s owner: %s  items: %d\n", list.ID, list.Name, list.Owner.Nickname, len(list.Items))
	}
	return 0
}

func runListCreate(ctx context.Context, w io.Writer, name string) int {
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(w, "Error: list name must not be empty")
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := c.CreateShopList(ctx, name); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Created shop list %q.\n", name)
	return 0
}

func runListShow(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseListID(w, arg)
	if !ok {
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	list, err := c.ShopList(ctx, id)
	if errors.Is(err, client.ErrShopListNotFound) {
		fmt.Fprintln(w, "Shop list not found.")
		return 2
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(list, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatShopList(list))
	return 0
}

// formatShopList renders one list with its items for human output
func formatShopList(list *client.ShopList) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (id %d)\n", list.Name, list.ID)
	fmt.Fprintf(&sb, "Owner: %s", list.Owner.Nickname)
	if len(list.Members) > 0 {
		names := make([]string, 0, len(list.Members))
		for _, m := range list.Members {
			names = append(names, m.Nickname)
		}
		fmt.Fprintf(&sb, "  Members: %s", strings.Join(names, ", "))
	}
	sb.WriteString("\n")

	if len(list.Items) == 0 {
		sb.WriteString("No items.")
		return sb.String()
	}

	for _, item := range list.Items {
		mark := " "
		if item.IsBought {
			mark = "x"
		}
		fmt.Fprintf(&sb, "[%s] %4d  %s", mark, item.ID, item.ItemName)
		if item.BrandName != "" {
			fmt.Fprintf(&sb, " (%s)", item.BrandName)
		}
		if len(item.AvailableStores) > 0 {
			fmt.Fprintf(&sb, "  @ %s", strings.Join(item.AvailableStores, ", "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func runListJoin(ctx context.Context, w io.Writer, shareCode string) int {
	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := c.JoinShopList(ctx, shareCode); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Joined shop list.")
	return 0
}

func runListLeave(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseListID(w, arg)
	if !ok {
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := c.LeaveShopList(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Left shop list.")
	return 0
}

func runListShare(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseListID(w, arg)
	if !ok {
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	code, err := c.ShareCode(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.Marshal(map[string]string{"share_code": code})
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Share code: %s\n", code)
	return 0
}

func runListRevoke(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseListID(w, arg)
	if !ok {
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := c.RevokeShareCode(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Share code revoked.")
	return 0
}

func runListMembers(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseListID(w, arg)
	if !ok {
		return 2
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	members, err := c.Members(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(members, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(members) == 0 {
		fmt.Fprintln(w, "No members.")
		return 0
	}
	for _, m := range members {
		fmt.Fprintln(w, m.Nickname)
	}
	return 0
}

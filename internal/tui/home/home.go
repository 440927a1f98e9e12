// ABOUTME: Home screen showing the user's shop lists
// ABOUTME: Cursor-based navigation with open, create, join, and leave actions

package home

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/tui/icons"
	"github.com/kdjuwidja/shopper-cli/internal/tui/styles"
)

// OpenListMsg is sent when the user opens a shop list
type OpenListMsg struct {
	ID int64
}

// CreateListMsg is sent when the user wants to create a list
type CreateListMsg struct{}

// JoinListMsg is sent when the user wants to join a shared list
type JoinListMsg struct{}

// LeaveListMsg is sent when the user leaves the selected list
type LeaveListMsg struct {
	ID int64
}

// Home is the shop list overview model
type Home struct {
	lists    []client.ShopList
	nickname string
	cursor   int
	width    int
}

// New creates the home screen
func New(nickname string) *Home {
	return &Home{nickname: nickname}
}

// SetLists replaces the displayed lists, clamping the cursor
func (h *Home) SetLists(lists []client.ShopList) {
	h.lists = lists
	if h.cursor >= len(lists) {
		h.cursor = len(lists) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

// Selected returns the list under the cursor, or nil
func (h *Home) Selected() *client.ShopList {
	if h.cursor < 0 || h.cursor >= len(h.lists) {
		return nil
	}
	return &h.lists[h.cursor]
}

// Init implements tea.Model
func (h *Home) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.cursor > 0 {
				h.cursor--
			}
		case "down", "j":
			if h.cursor < len(h.lists)-1 {
				h.cursor++
			}
		case "enter":
			if sel := h.Selected(); sel != nil {
				id := sel.ID
				return h, func() tea.Msg { return OpenListMsg{ID: id} }
			}
		case "n":
			return h, func() tea.Msg { return CreateListMsg{} }
		case "J":
			return h, func() tea.Msg { return JoinListMsg{} }
		case "x":
			if sel := h.Selected(); sel != nil {
				id := sel.ID
				return h, func() tea.Msg { return LeaveListMsg{ID: id} }
			}
		}
	}
	return h, nil
}

// View implements tea.Model
func (h *Home) View() string {
	var sb strings.Builder

	title := icons.Cart.String() + " Shop Lists"
	if h.nickname != "" {
		title += "  " + styles.Subtitle.Render("("+h.nickname+")")
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n\n")

	if len(h.lists) == 0 {
		sb.WriteString(styles.Subtitle.Render("No shop lists yet. Press 'n' to create one or 'J' to join."))
		return sb.String()
	}

	for i, list := range h.lists {
		cursor := "  "
		if i == h.cursor {
			cursor = styles.Cursor.Render("> ")
		}

		remaining := 0
		for _, item := range list.Items {
			if !item.IsBought {
				remaining++
			}
		}

		line := fmt.Sprintf("%s%s %-24s", cursor, icons.List.String(), list.Name)
		line += styles.Subtitle.Render(fmt.Sprintf("  %d to buy / %d items  owner: %s", remaining, len(list.Items), list.Owner.Nickname))
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

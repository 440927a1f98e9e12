// ABOUTME: Shop list detail screen with item editing
// ABOUTME: Toggles bought state, removes items, and manages sharing

package editlist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/tui/icons"
	"github.com/kdjuwidja/shopper-cli/internal/tui/styles"
	"github.com/kdjuwidja/shopper-cli/internal/tui/widgets"
)

// ToggleItemMsg is sent when the user toggles an item's bought state
type ToggleItemMsg struct {
	ListID int64
	ItemID int64
	Bought bool
}

// RemoveItemMsg is sent when the user removes an item
type RemoveItemMsg struct {
	ListID int64
	ItemID int64
}

// EditItemMsg is sent when the user wants to edit an item
type EditItemMsg struct {
	ListID int64
	Item   client.ShopListItem
}

// AddItemMsg is sent when the user wants to add an item via flyer search
type AddItemMsg struct {
	ListID int64
}

// ShareMsg is sent when the user requests a share code
type ShareMsg struct {
	ListID int64
}

// RevokeMsg is sent when the user revokes the share code
type RevokeMsg struct {
	ListID int64
}

// BackMsg is sent when the user leaves the screen
type BackMsg struct{}

// EditList is the shop list detail model
type EditList struct {
	list      *client.ShopList
	cursor    int
	shareCode string
	width     int
}

// New creates the list detail screen
func New(list *client.ShopList) *EditList {
	return &EditList{list: list}
}

// SetList replaces the displayed list, keeping the cursor in range
func (e *EditList) SetList(list *client.ShopList) {
	e.list = list
	if e.cursor >= len(list.Items) {
		e.cursor = len(list.Items) - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

// SetShareCode displays a freshly requested share code
func (e *EditList) SetShareCode(code string) {
	e.shareCode = code
}

// ListID returns the id of the displayed list
func (e *EditList) ListID() int64 {
	return e.list.ID
}

func (e *EditList) selected() *client.ShopListItem {
	if e.cursor < 0 || e.cursor >= len(e.list.Items) {
		return nil
	}
	return &e.list.Items[e.cursor]
}

// Init implements tea.Model
func (e *EditList) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (e *EditList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		return e, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if e.cursor > 0 {
				e.cursor--
			}
		case "down", "j":
			if e.cursor < len(e.list.Items)-1 {
				e.cursor++
			}
		case " ", "x":
			if item := e.selected(); item != nil {
				toggle := ToggleItemMsg{ListID: e.list.ID, ItemID: item.ID, Bought: !item.IsBought}
				return e, func() tea.Msg { return toggle }
			}
		case "d":
			if item := e.selected(); item != nil {
				remove := RemoveItemMsg{ListID: e.list.ID, ItemID: item.ID}
				return e, func() tea.Msg { return remove }
			}
		case "e":
			if item := e.selected(); item != nil {
				edit := EditItemMsg{ListID: e.list.ID, Item: *item}
				return e, func() tea.Msg { return edit }
			}
		case "a":
			add := AddItemMsg{ListID: e.list.ID}
			return e, func() tea.Msg { return add }
		case "s":
			share := ShareMsg{ListID: e.list.ID}
			return e, func() tea.Msg { return share }
		case "S":
			revoke := RevokeMsg{ListID: e.list.ID}
			e.shareCode = ""
			return e, func() tea.Msg { return revoke }
		case "b", "esc":
			return e, func() tea.Msg { return BackMsg{} }
		}
	}
	return e, nil
}

// View implements tea.Model
func (e *EditList) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.List.String() + " " + e.list.Name))
	sb.WriteString("\n")

	meta := "Owner: " + e.list.Owner.Nickname
	if len(e.list.Members) > 0 {
		names := make([]string, 0, len(e.list.Members))
		for _, m := range e.list.Members {
			names = append(names, m.Nickname)
		}
		meta += "  Members: " + strings.Join(names, ", ")
	}
	sb.WriteString(styles.Subtitle.Render(meta))
	sb.WriteString("\n\n")

	if e.shareCode != "" {
		sb.WriteString(icons.Share.String() + " Share code: " + styles.ValueStyle.Render(e.shareCode))
		sb.WriteString("\n\n")
	}

	if len(e.list.Items) == 0 {
		sb.WriteString(styles.Subtitle.Render("No items. Press 'a' to search flyers and add one."))
		return sb.String()
	}

	for i, item := range e.list.Items {
		cursor := "  "
		if i == e.cursor {
			cursor = styles.Cursor.Render("> ")
		}

		name := item.ItemName
		if item.BrandName != "" {
			name += " (" + item.BrandName + ")"
		}
		if item.IsBought {
			name = styles.Bought.Render(name)
		}

		line := fmt.Sprintf("%s%s %s  %s", cursor, icons.Item.String(), widgets.BoughtBadge(item.IsBought), name)
		if deal := widgets.DealBadge(len(item.AvailableStores)); deal != "" {
			line += "  " + deal + " " + styles.Store.Render(strings.Join(item.AvailableStores, ", "))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		if item.ExtraInfo != "" {
			sb.WriteString("      " + styles.Subtitle.Render(item.ExtraInfo) + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

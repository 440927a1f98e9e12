// ABOUTME: Tests for the shop list detail screen
// ABOUTME: Validates item toggling, removal, and sharing messages

package editlist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kdjuwidja/shopper-cli/internal/client"
)

func testList() *client.ShopList {
	return &client.ShopList{
		ID:    5,
		Name:  "Groceries",
		Owner: client.ShopListOwner{Nickname: "alice"},
		Items: []client.ShopListItem{
			{ID: 10, ItemName: "Milk", IsBought: false},
			{ID: 11, ItemName: "Eggs", IsBought: true, AvailableStores: []string{"FreshMart"}},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggleInvertsBoughtState(t *testing.T) {
	e := New(testList())

	_, cmd := e.Update(key(" "))
	if cmd == nil {
		t.Fatal("expected space to emit a message")
	}
	toggle, ok := cmd().(ToggleItemMsg)
	if !ok {
		t.Fatalf("expected ToggleItemMsg, got %T", cmd())
	}
	if toggle.ListID != 5 || toggle.ItemID != 10 {
		t.Errorf("expected list 5 item 10, got list %d item %d", toggle.ListID, toggle.ItemID)
	}
	if !toggle.Bought {
		t.Error("expected toggle to mark the unbought item as bought")
	}
}

func TestToggleBoughtItemUnmarks(t *testing.T) {
	e := New(testList())

	model, _ := e.Update(key("j"))
	e = model.(*EditList)

	_, cmd := e.Update(key("x"))
	toggle := cmd().(ToggleItemMsg)
	if toggle.ItemID != 11 {
		t.Fatalf("expected item 11, got %d", toggle.ItemID)
	}
	if toggle.Bought {
		t.Error("expected toggle to unmark the bought item")
	}
}

func TestRemoveSelectedItem(t *testing.T) {
	e := New(testList())

	_, cmd := e.Update(key("d"))
	if cmd == nil {
		t.Fatal("expected 'd' to emit a message")
	}
	remove, ok := cmd().(RemoveItemMsg)
	if !ok {
		t.Fatalf("expected RemoveItemMsg, got %T", cmd())
	}
	if remove.ListID != 5 || remove.ItemID != 10 {
		t.Errorf("expected list 5 item 10, got list %d item %d", remove.ListID, remove.ItemID)
	}
}

func TestEditSelectedItem(t *testing.T) {
	e := New(testList())

	_, cmd := e.Update(key("e"))
	if cmd == nil {
		t.Fatal("expected 'e' to emit a message")
	}
	edit, ok := cmd().(EditItemMsg)
	if !ok {
		t.Fatalf("expected EditItemMsg, got %T", cmd())
	}
	if edit.Item.ItemName != "Milk" {
		t.Errorf("expected item 'Milk', got %q", edit.Item.ItemName)
	}
}

func TestShareAndRevoke(t *testing.T) {
	e := New(testList())

	_, cmd := e.Update(key("s"))
	if share, ok := cmd().(ShareMsg); !ok || share.ListID != 5 {
		t.Error("expected ShareMsg for list 5 on 's'")
	}

	e.SetShareCode("ABC123")
	if !strings.Contains(e.View(), "ABC123") {
		t.Error("expected share code shown in view")
	}

	model, cmd := e.Update(key("S"))
	e = model.(*EditList)
	if revoke, ok := cmd().(RevokeMsg); !ok || revoke.ListID != 5 {
		t.Error("expected RevokeMsg for list 5 on 'S'")
	}
	if strings.Contains(e.View(), "ABC123") {
		t.Error("expected share code cleared after revoke")
	}
}

func TestBackMessage(t *testing.T) {
	e := New(testList())

	_, cmd := e.Update(key("b"))
	if cmd == nil {
		t.Fatal("expected 'b' to emit a message")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected BackMsg on 'b'")
	}
}

func TestSetListClampsCursor(t *testing.T) {
	e := New(testList())

	model, _ := e.Update(key("j"))
	e = model.(*EditList)

	shrunk := testList()
	shrunk.Items = shrunk.Items[:1]
	e.SetList(shrunk)

	_, cmd := e.Update(key(" "))
	toggle := cmd().(ToggleItemMsg)
	if toggle.ItemID != 10 {
		t.Errorf("expected cursor clamped to item 10, got %d", toggle.ItemID)
	}
}

func TestViewShowsItemsAndDeals(t *testing.T) {
	e := New(testList())

	view := e.View()
	if !strings.Contains(view, "Milk") {
		t.Error("expected view to contain 'Milk'")
	}
	if !strings.Contains(view, "FreshMart") {
		t.Error("expected view to show the deal store")
	}
	if !strings.Contains(view, "alice") {
		t.Error("expected view to show the owner")
	}
}

// ABOUTME: Tests for the shop list overview screen
// ABOUTME: Validates navigation, selection, and emitted messages

package home

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kdjuwidja/shopper-cli/internal/client"
)

func testLists() []client.ShopList {
	return []client.ShopList{
		{ID: 1, Name: "Groceries", Owner: client.ShopListOwner{Nickname: "alice"},
			Items: []client.ShopListItem{{ID: 10, ItemName: "Milk"}, {ID: 11, ItemName: "Eggs", IsBought: true}}},
		{ID: 2, Name: "Hardware", Owner: client.ShopListOwner{Nickname: "bob"}},
	}
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorNavigation(t *testing.T) {
	h := New("alice")
	h.SetLists(testLists())

	if h.Selected().ID != 1 {
		t.Fatalf("expected first list selected, got %d", h.Selected().ID)
	}

	model, _ := h.Update(key("j"))
	h = model.(*Home)
	if h.Selected().ID != 2 {
		t.Errorf("expected second list after down, got %d", h.Selected().ID)
	}

	// Cannot move past the last entry
	model, _ = h.Update(key("j"))
	h = model.(*Home)
	if h.Selected().ID != 2 {
		t.Errorf("expected cursor clamped at last entry, got %d", h.Selected().ID)
	}

	model, _ = h.Update(key("k"))
	h = model.(*Home)
	if h.Selected().ID != 1 {
		t.Errorf("expected first list after up, got %d", h.Selected().ID)
	}
}

func TestEnterOpensSelectedList(t *testing.T) {
	h := New("alice")
	h.SetLists(testLists())

	_, cmd := h.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected enter to emit a message")
	}
	open, ok := cmd().(OpenListMsg)
	if !ok {
		t.Fatalf("expected OpenListMsg, got %T", cmd())
	}
	if open.ID != 1 {
		t.Errorf("expected list 1 opened, got %d", open.ID)
	}
}

func TestEnterWithNoListsDoesNothing(t *testing.T) {
	h := New("alice")

	if _, cmd := h.Update(key("enter")); cmd != nil {
		t.Error("expected no message when there is nothing to open")
	}
}

func TestCreateAndJoinKeys(t *testing.T) {
	h := New("alice")

	_, cmd := h.Update(key("n"))
	if cmd == nil {
		t.Fatal("expected 'n' to emit a message")
	}
	if _, ok := cmd().(CreateListMsg); !ok {
		t.Error("expected CreateListMsg on 'n'")
	}

	_, cmd = h.Update(key("J"))
	if cmd == nil {
		t.Fatal("expected 'J' to emit a message")
	}
	if _, ok := cmd().(JoinListMsg); !ok {
		t.Error("expected JoinListMsg on 'J'")
	}
}

func TestLeaveSelectedList(t *testing.T) {
	h := New("alice")
	h.SetLists(testLists())

	model, _ := h.Update(key("j"))
	h = model.(*Home)

	_, cmd := h.Update(key("x"))
	if cmd == nil {
		t.Fatal("expected 'x' to emit a message")
	}
	leave, ok := cmd().(LeaveListMsg)
	if !ok {
		t.Fatalf("expected LeaveListMsg, got %T", cmd())
	}
	if leave.ID != 2 {
		t.Errorf("expected to leave list 2, got %d", leave.ID)
	}
}

func TestSetListsClampsCursor(t *testing.T) {
	h := New("alice")
	h.SetLists(testLists())

	model, _ := h.Update(key("j"))
	h = model.(*Home)

	// Shrinking the list pulls the cursor back in range
	h.SetLists(testLists()[:1])
	if h.Selected() == nil || h.Selected().ID != 1 {
		t.Error("expected cursor clamped to the remaining list")
	}
}

func TestViewShowsListsAndCounts(t *testing.T) {
	h := New("alice")
	h.SetLists(testLists())

	view := h.View()
	if !strings.Contains(view, "Groceries") {
		t.Error("expected view to contain 'Groceries'")
	}
	if !strings.Contains(view, "Hardware") {
		t.Error("expected view to contain 'Hardware'")
	}
	// One of two grocery items is still to buy
	if !strings.Contains(view, "1 to buy / 2 items") {
		t.Error("expected view to show remaining item count")
	}
}

func TestViewEmptyState(t *testing.T) {
	h := New("alice")

	if !strings.Contains(h.View(), "No shop lists yet") {
		t.Error("expected empty state hint")
	}
}

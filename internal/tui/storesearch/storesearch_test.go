// ABOUTME: Tests for the store search screen
// ABOUTME: Validates field validation, defaults, and address priming

package storesearch

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(t *testing.T, s *StoreSearch, text string) *StoreSearch {
	t.Helper()
	for _, r := range text {
		model, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		s = model.(*StoreSearch)
	}
	return s
}

func tabTo(t *testing.T, s *StoreSearch, presses int) *StoreSearch {
	t.Helper()
	for i := 0; i < presses; i++ {
		model, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
		s = model.(*StoreSearch)
	}
	return s
}

func TestAddressPrimedFromLastSearch(t *testing.T) {
	s := New("123 Main St")

	if !strings.Contains(s.View(), "123 Main St") {
		t.Error("expected the address field primed with the last address")
	}
}

func TestSubmitRequiresProduct(t *testing.T) {
	s := New("123 Main St")

	model, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = model.(*StoreSearch)
	if cmd != nil {
		t.Error("expected no submission without a product")
	}
	if !strings.Contains(s.View(), "Enter a product") {
		t.Error("expected validation hint in view")
	}
}

func TestSubmitRequiresAddress(t *testing.T) {
	s := New("")
	s = typeString(t, s, "milk")

	model, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = model.(*StoreSearch)
	if cmd != nil {
		t.Error("expected no submission without an address")
	}
	if !strings.Contains(s.View(), "Enter an address") {
		t.Error("expected validation hint in view")
	}
}

func TestSubmitDefaultsDistance(t *testing.T) {
	s := New("123 Main St")
	s = typeString(t, s, "milk")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submission message")
	}
	submit, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	if submit.Product != "milk" {
		t.Errorf("expected product 'milk', got %q", submit.Product)
	}
	if submit.DistanceKm != 5 {
		t.Errorf("expected default distance 5 km, got %v", submit.DistanceKm)
	}
	if submit.Address != "123 Main St" {
		t.Errorf("expected primed address, got %q", submit.Address)
	}
}

func TestSubmitParsesDistance(t *testing.T) {
	s := New("123 Main St")
	s = typeString(t, s, "milk")
	s = tabTo(t, s, 1)
	s = typeString(t, s, "2.5")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submission message")
	}
	submit := cmd().(SubmitMsg)
	if submit.DistanceKm != 2.5 {
		t.Errorf("expected distance 2.5 km, got %v", submit.DistanceKm)
	}
}

func TestSubmitRejectsBadDistance(t *testing.T) {
	s := New("123 Main St")
	s = typeString(t, s, "milk")
	s = tabTo(t, s, 1)
	s = typeString(t, s, "-3")

	model, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = model.(*StoreSearch)
	if cmd != nil {
		t.Error("expected no submission with a negative distance")
	}
	if !strings.Contains(s.View(), "positive number") {
		t.Error("expected validation hint in view")
	}
}

func TestEscEmitsBack(t *testing.T) {
	s := New("")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected esc to emit a message")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected BackMsg on esc")
	}
}

func TestNoticeShownInView(t *testing.T) {
	s := New("")
	s.SetNotice("Store lookup is not available yet.")

	if !strings.Contains(s.View(), "not available yet") {
		t.Error("expected notice in view")
	}
}

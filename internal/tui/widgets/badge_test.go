// ABOUTME: Tests for badge widgets
// ABOUTME: Validates badge text and price fragment joining

package widgets

import (
	"strings"
	"testing"
)

func TestBoughtBadge(t *testing.T) {
	if !strings.Contains(BoughtBadge(true), "BOUGHT") {
		t.Error("expected BOUGHT badge for bought items")
	}
	if !strings.Contains(BoughtBadge(false), "TO BUY") {
		t.Error("expected TO BUY badge for unbought items")
	}
}

func TestDealBadge(t *testing.T) {
	if DealBadge(0) != "" {
		t.Error("expected no badge without deals")
	}
	if !strings.Contains(DealBadge(1), "1 DEAL") {
		t.Error("expected singular badge for one deal")
	}
	if !strings.Contains(DealBadge(3), "DEALS") {
		t.Error("expected plural badge for several deals")
	}
}

func TestPriceText(t *testing.T) {
	tests := []struct {
		name             string
		pre, price, post string
		expected         string
	}{
		{"all fragments", "2 for", "5.00", "with card", "2 for 5.00 with card"},
		{"price only", "", "2.99", "", "2.99"},
		{"empty", "", "", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PriceText(tc.pre, tc.price, tc.post); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

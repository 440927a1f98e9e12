// ABOUTME: Tests for postal code validation
// ABOUTME: Covers the alternating letter/digit format

package client

import "testing"

func TestValidPostalCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"A1B2C3", true},
		{"K1A0B1", true},
		{"Z9Z9Z9", true},
		{"", false},
		{"A1B2C", false},    // too short
		{"A1B2C3D", false},  // too long
		{"a1b2c3", false},   // lowercase
		{"1A2B3C", false},   // digit first
		{"AAB2C3", false},   // letter in digit position
		{"A1B2C!", false},   // punctuation
		{"A1 2C3", false},   // space
	}

	for _, tt := range tests {
		if got := ValidPostalCode(tt.code); got != tt.want {
			t.Errorf("ValidPostalCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

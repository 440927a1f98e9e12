// ABOUTME: Local input validation shared by the CLI commands and TUI forms
// ABOUTME: Postal codes alternate uppercase letter and digit, e.g. A1B2C3

package client

// ValidPostalCode reports whether code is 6 characters alternating
// uppercase letter and digit (letter first).
func ValidPostalCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if i%2 == 0 {
			if c < 'A' || c > 'Z' {
				return false
			}
		} else {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

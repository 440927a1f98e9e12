// ABOUTME: System browser launcher for the login redirect
// ABOUTME: Platform-specific open commands with a graceful fallback

package auth

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openBrowser performs the full "browser navigation" the login initiator
// needs. It is the default navigation sink; tests inject their own.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

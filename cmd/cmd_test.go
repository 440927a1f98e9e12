// ABOUTME: Shared test helpers for the command package
// ABOUTME: Sets up an isolated config dir and a fake core API server

package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kdjuwidja/shopper-cli/internal/session"
)

// setupSession points the config dir at a temp dir and optionally seeds
// a stored access token
func setupSession(t *testing.T, token string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if token != "" {
		store := session.NewFileStore(session.DefaultConfigDir())
		if err := store.SetTokens(token, "refresh1"); err != nil {
			t.Fatalf("seeding token: %v", err)
		}
	}
}

// setupServer starts a fake core API and routes commands at it
func setupServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	coreURL = server.URL
	t.Cleanup(func() { coreURL = "" })
	return server
}

// ABOUTME: OAuth2 authorization-code flow for the shopper CLI
// ABOUTME: Mints CSRF state, builds the authorize URL, and handles the callback

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/kdjuwidja/shopper-cli/internal/config"
	"github.com/kdjuwidja/shopper-cli/internal/session"
)

// Terminal failures of a login attempt. None of these are retried; the user
// restarts the flow, which mints a fresh state.
var (
	ErrInvalidResponse   = errors.New("invalid authorization response - missing required parameters")
	ErrStateMismatch     = errors.New("state mismatch - possible security issue")
	ErrNoAccessToken     = errors.New("no access token in token response")
	ErrTokenStoreVerify  = errors.New("token storage verification failed")
	ErrMissingClientCred = errors.New("SHOPPER_CLIENT_ID and SHOPPER_CLIENT_SECRET must be set")
)

// ProviderError carries an error the authorization server sent back on the
// redirect. It is surfaced verbatim.
type ProviderError struct {
	Code string
}

func (e *ProviderError) Error() string {
	return "authorization server returned error: " + e.Code
}

// CallbackParams are the query parameters the authorization server appends
// to the redirect URI.
type CallbackParams struct {
	Code  string
	State string
	Error string
}

// Flow drives one login attempt end to end.
type Flow struct {
	oauth *oauth2.Config
	store session.Store

	// User-facing output goes here, never straight to stdout.
	out io.Writer

	// Navigation sink, injectable so tests never open a real browser.
	openURL func(string) error

	// Loopback callback server address and how long to wait for the
	// user to finish in the browser.
	callbackAddr string
	timeout      time.Duration
}

// NewFlow builds a login flow from config writing its messages to out.
// Client credentials are required here, not at config load, so read-only
// commands work without them.
func NewFlow(cfg *config.Config, store session.Store, out io.Writer) (*Flow, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingClientCred
	}
	return &Flow{
		oauth:        cfg.OAuth(),
		store:        store,
		out:          out,
		openURL:      openBrowser,
		callbackAddr: cfg.CallbackAddr,
		timeout:      5 * time.Minute,
	}, nil
}

// NewState mints a CSRF state token from a cryptographically secure source.
func NewState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// AuthCodeURL builds the authorization URL for the given state. A non-empty
// providerError is passed through for the auth server to display, matching
// the login screen's error round-trip.
func (f *Flow) AuthCodeURL(state, providerError string) string {
	opts := []oauth2.AuthCodeOption{}
	if providerError != "" {
		opts = append(opts, oauth2.SetAuthURLParam("error", providerError))
	}
	return f.oauth.AuthCodeURL(state, opts...)
}

// HandleCallback runs the callback state machine:
// AwaitingParams -> ValidatingState -> ExchangingCode -> Success/Failure.
// The state comparison is the sole CSRF defense and must happen before any
// network call. Runs exactly once per attempt; every failure is terminal.
func (f *Flow) HandleCallback(ctx context.Context, p CallbackParams) error {
	if p.Error != "" {
		return &ProviderError{Code: p.Error}
	}
	if p.Code == "" || p.State == "" {
		return ErrInvalidResponse
	}

	stored := f.store.State()
	if stored == "" || stored != p.State {
		return ErrStateMismatch
	}

	// The original client sent state alongside the standard exchange
	// parameters; the token endpoint checks it.
	tok, err := f.oauth.Exchange(ctx, p.Code, oauth2.SetAuthURLParam("state", p.State))
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}
	if tok.AccessToken == "" {
		return ErrNoAccessToken
	}

	if err := f.store.SetTokens(tok.AccessToken, tok.RefreshToken); err != nil {
		_ = f.store.ClearTokens()
		return fmt.Errorf("failed to persist tokens: %w", err)
	}
	_ = f.store.ClearState()

	// Read-after-write check: the exchange succeeded, but a session that
	// cannot be read back is worse than no session at all.
	if f.store.AccessToken() != tok.AccessToken {
		_ = f.store.ClearTokens()
		return ErrTokenStoreVerify
	}

	slog.Debug("login complete", "has_refresh_token", tok.RefreshToken != "")
	return nil
}

// parseCallback extracts callback parameters from a redirect URL query.
func parseCallback(query url.Values) CallbackParams {
	return CallbackParams{
		Code:  query.Get("code"),
		State: query.Get("state"),
		Error: query.Get("error"),
	}
}

// ABOUTME: Loopback callback server for the browser-based login flow
// ABOUTME: Serves /callback once and hands the parameters back to the flow

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const callbackPageSuccess = `<!DOCTYPE html>
<html>
<head><title>Shopper</title></head>
<body>
<p>Login complete. You can close this window and return to the terminal.</p>
</body>
</html>`

const callbackPageFailure = `<!DOCTYPE html>
<html>
<head><title>Shopper</title></head>
<body>
<p>Login failed. Return to the terminal for details.</p>
</body>
</html>`

// Run executes the login initiator contract. If a token is already stored
// it returns immediately; validity is settled by the first API call's 401.
// Otherwise it mints and persists a fresh state, opens the browser at the
// authorize URL, and waits for exactly one callback on the loopback server.
// providerError, when non-empty, is passed through to the auth server.
func (f *Flow) Run(ctx context.Context, providerError string) error {
	if f.store.AccessToken() != "" {
		return nil
	}

	state, err := NewState()
	if err != nil {
		return err
	}
	if err := f.store.SetState(state); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}

	listener, err := net.Listen("tcp", f.callbackAddr)
	if err != nil {
		return fmt.Errorf("cannot bind callback address %s: %w", f.callbackAddr, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	params := make(chan CallbackParams, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /callback", func(w http.ResponseWriter, r *http.Request) {
		p := parseCallback(r.URL.Query())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if p.Error != "" || p.Code == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, callbackPageFailure)
		} else {
			fmt.Fprint(w, callbackPageSuccess)
		}
		select {
		case params <- p:
		default:
			// A second hit on /callback changes nothing; the flow
			// runs exactly once per attempt.
		}
	})

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	var received CallbackParams
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		select {
		case received = <-params:
			return nil
		case <-gctx.Done():
			return fmt.Errorf("login timed out waiting for browser callback: %w", gctx.Err())
		}
	})

	authURL := f.AuthCodeURL(state, providerError)
	slog.Debug("opening browser for login", "url", authURL)
	if err := f.openURL(authURL); err != nil {
		// The user can still paste the URL by hand; don't abort the flow.
		fmt.Fprintf(f.out, "Could not open a browser. Visit this URL to log in:\n\n  %s\n\n", authURL)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return f.HandleCallback(ctx, received)
}

// ABOUTME: Tests for the profile commands
// ABOUTME: Verifies output formatting, validation, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestProfileCommand_Success(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/core/v2/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":          "user-1",
			"nickname":    "alice",
			"postal_code": "A1B2C3",
		})
	})

	var buf bytes.Buffer
	exitCode := runProfile(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("alice")) {
		t.Error("expected nickname in output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("A1B2C3")) {
		t.Error("expected postal code in output")
	}
}

func TestProfileCommand_NotLoggedIn(t *testing.T) {
	setupSession(t, "")

	var buf bytes.Buffer
	exitCode := runProfile(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not logged in")) {
		t.Error("expected login hint in output")
	}
}

func TestProfileCommand_NoProfileYet(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var buf bytes.Buffer
	exitCode := runProfile(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("No profile yet")) {
		t.Error("expected setup hint in output")
	}
}

func TestProfileSet_InvalidPostalCode(t *testing.T) {
	setupSession(t, "tok1")

	requests := 0
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	var buf bytes.Buffer
	exitCode := runProfileSet(context.Background(), &buf, "alice", "123456")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if requests != 0 {
		t.Error("expected local validation to reject before any request")
	}
	if !bytes.Contains(buf.Bytes(), []byte("postal code")) {
		t.Error("expected validation message in output")
	}
}

func TestProfileSet_Success(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["nickname"] != "alice" || body["postal_code"] != "A1B2C3" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":          "user-1",
			"nickname":    "alice",
			"postal_code": "A1B2C3",
		})
	})

	var buf bytes.Buffer
	exitCode := runProfileSet(context.Background(), &buf, "alice", "A1B2C3")

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Profile saved")) {
		t.Error("expected confirmation in output")
	}
}

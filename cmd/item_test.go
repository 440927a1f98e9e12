// ABOUTME: Tests for the item commands
// ABOUTME: Verifies request shapes, validation, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestItemAdd_Success(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/core/v2/shoplist/7/item" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["item_name"] != "Milk" {
			t.Errorf("unexpected item name %v", body["item_name"])
		}
		w.WriteHeader(http.StatusOK)
	})

	var buf bytes.Buffer
	exitCode := runItemAdd(context.Background(), &buf, "7", "Milk")

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Added")) {
		t.Error("expected confirmation in output")
	}
}

func TestItemAdd_InvalidListID(t *testing.T) {
	setupSession(t, "tok1")

	var buf bytes.Buffer
	exitCode := runItemAdd(context.Background(), &buf, "abc", "Milk")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestItemEdit_RequiresAField(t *testing.T) {
	setupSession(t, "tok1")

	itemEditName, itemEditBrand, itemEditNote = "", "", ""

	var buf bytes.Buffer
	exitCode := runItemEdit(context.Background(), &buf, "7", "10")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("nothing to change")) {
		t.Error("expected hint about missing flags")
	}
}

func TestItemEdit_SendsOnlySetFields(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/core/v2/shoplist/7/item/10" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["item_name"] != "Oat milk" {
			t.Errorf("unexpected item name %v", body["item_name"])
		}
		if _, ok := body["brand_name"]; ok {
			t.Error("expected unset brand omitted from patch")
		}
		w.WriteHeader(http.StatusOK)
	})

	itemEditName, itemEditBrand, itemEditNote = "Oat milk", "", ""
	defer func() { itemEditName = "" }()

	var buf bytes.Buffer
	exitCode := runItemEdit(context.Background(), &buf, "7", "10")

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
}

func TestItemDone_MarksBought(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["is_bought"] != true {
			t.Errorf("expected is_bought true, got %v", body["is_bought"])
		}
		w.WriteHeader(http.StatusOK)
	})

	var buf bytes.Buffer
	exitCode := runItemDone(context.Background(), &buf, "7", "10", true)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Marked as bought")) {
		t.Error("expected confirmation in output")
	}
}

func TestItemDone_Undone(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["is_bought"] != false {
			t.Errorf("expected is_bought false, got %v", body["is_bought"])
		}
		w.WriteHeader(http.StatusOK)
	})

	var buf bytes.Buffer
	exitCode := runItemDone(context.Background(), &buf, "7", "10", false)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not bought")) {
		t.Error("expected confirmation in output")
	}
}

func TestItemRemove_Success(t *testing.T) {
	setupSession(t, "tok1")
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/core/v2/shoplist/7/item/10" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	var buf bytes.Buffer
	exitCode := runItemRemove(context.Background(), &buf, "7", "10")

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Item removed")) {
		t.Error("expected confirmation in output")
	}
}

// ABOUTME: Integration tests for the TUI application model
// ABOUTME: Tests screen transitions and session expiry handling

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/session"
	"github.com/kdjuwidja/shopper-cli/internal/tui/editlist"
	"github.com/kdjuwidja/shopper-cli/internal/tui/home"
	"github.com/kdjuwidja/shopper-cli/internal/tui/searchitem"
)

func newTestApp() *App {
	store := session.NewMemStore()
	store.SetTokens("tok1", "")
	c := client.New("http://localhost:8080", store)
	return New(c, store)
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp()

	if app.screen != ScreenHome {
		t.Errorf("expected initial screen to be ScreenHome, got %d", app.screen)
	}
	if app.home == nil {
		t.Error("expected home screen to be initialized")
	}
}

func TestMissingProfileOpensSetupForm(t *testing.T) {
	app := newTestApp()

	model, _ := app.Update(profileMsg{err: client.ErrProfileNotFound})
	app = model.(*App)
	if app.screen != ScreenForm {
		t.Errorf("expected profile setup form, got screen %d", app.screen)
	}
	if app.form == nil {
		t.Error("expected form to be created")
	}
}

func TestProfileLoadedFetchesLists(t *testing.T) {
	app := newTestApp()

	profile := &session.Profile{Nickname: "alice", PostalCode: "A1B2C3"}
	model, cmd := app.Update(profileMsg{profile: profile})
	app = model.(*App)
	if app.profile == nil || app.profile.Nickname != "alice" {
		t.Error("expected profile to be stored")
	}
	if cmd == nil {
		t.Error("expected a follow-up command to load lists")
	}
}

func TestListsLoadedShowsHome(t *testing.T) {
	app := newTestApp()
	app.width = 100
	app.height = 40

	lists := []client.ShopList{{ID: 1, Name: "Groceries", Owner: client.ShopListOwner{Nickname: "alice"}}}
	model, _ := app.Update(listsMsg{lists: lists})
	app = model.(*App)

	if app.screen != ScreenHome {
		t.Errorf("expected home screen, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Groceries") {
		t.Error("expected view to show the loaded list")
	}
}

func TestListLoadedOpensDetail(t *testing.T) {
	app := newTestApp()

	list := &client.ShopList{ID: 3, Name: "Groceries", Owner: client.ShopListOwner{Nickname: "alice"}}
	model, _ := app.Update(listMsg{list: list})
	app = model.(*App)

	if app.screen != ScreenList {
		t.Errorf("expected list screen, got %d", app.screen)
	}
	if app.editList == nil || app.editList.ListID() != 3 {
		t.Error("expected the list detail to be created")
	}
}

func TestVanishedListFallsBackToHome(t *testing.T) {
	app := newTestApp()
	app.screen = ScreenList

	model, cmd := app.Update(listMsg{err: client.ErrShopListNotFound})
	app = model.(*App)

	if app.screen != ScreenHome {
		t.Errorf("expected fallback to home, got %d", app.screen)
	}
	if cmd == nil {
		t.Error("expected a reload of the overview")
	}
}

func TestSessionExpiryShowsLoginHint(t *testing.T) {
	app := newTestApp()
	app.width = 100
	app.height = 40

	model, _ := app.Update(listsMsg{err: client.ErrSessionExpired})
	app = model.(*App)

	if !app.expired {
		t.Fatal("expected expired state")
	}
	view := app.View()
	if !strings.Contains(view, "Session expired") {
		t.Error("expected session expired message")
	}
	if !strings.Contains(view, "shopper login") {
		t.Error("expected login hint")
	}

	// Any key exits once the session is gone
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestMutationTriggersRefetch(t *testing.T) {
	app := newTestApp()

	model, cmd := app.Update(actionDoneMsg{reloadList: 3})
	app = model.(*App)
	if cmd == nil {
		t.Error("expected a list refetch after a mutation")
	}

	model, cmd = app.Update(actionDoneMsg{reloadAll: true})
	_ = model
	if cmd == nil {
		t.Error("expected an overview refetch after a mutation")
	}
}

func TestMutationErrorStillRefetches(t *testing.T) {
	app := newTestApp()

	model, cmd := app.Update(actionDoneMsg{err: client.ErrShopListNotFound, reloadAll: true})
	app = model.(*App)
	if cmd == nil {
		t.Error("expected a refetch even when the mutation failed")
	}
	if app.status == "" {
		t.Error("expected the error surfaced in the status line")
	}
}

func TestOpenListFromHome(t *testing.T) {
	app := newTestApp()

	_, cmd := app.Update(home.OpenListMsg{ID: 9})
	if cmd == nil {
		t.Error("expected a load command when opening a list")
	}
}

func TestAddFromSearchStaysOnSearchScreen(t *testing.T) {
	app := newTestApp()

	// Open a list, then its flyer search
	list := &client.ShopList{ID: 3, Name: "Groceries"}
	model, _ := app.Update(listMsg{list: list})
	app = model.(*App)
	model, _ = app.Update(editlist.AddItemMsg{ListID: 3})
	app = model.(*App)
	if app.screen != ScreenSearch {
		t.Fatalf("expected search screen, got %d", app.screen)
	}

	// A reload arriving while searching must not switch screens
	model, _ = app.Update(listMsg{list: list})
	app = model.(*App)
	if app.screen != ScreenSearch {
		t.Errorf("expected to stay on the search screen, got %d", app.screen)
	}
}

func TestSearchBackReloadsList(t *testing.T) {
	app := newTestApp()

	list := &client.ShopList{ID: 3, Name: "Groceries"}
	model, _ := app.Update(listMsg{list: list})
	app = model.(*App)
	model, _ = app.Update(editlist.AddItemMsg{ListID: 3})
	app = model.(*App)

	model, cmd := app.Update(searchitem.BackMsg{})
	app = model.(*App)
	if app.screen != ScreenList {
		t.Errorf("expected return to the list screen, got %d", app.screen)
	}
	if cmd == nil {
		t.Error("expected the list to be refetched on return")
	}
}

func TestScreenConstants(t *testing.T) {
	if ScreenHome != 0 {
		t.Errorf("expected ScreenHome to be 0, got %d", ScreenHome)
	}
	if ScreenList != 1 {
		t.Errorf("expected ScreenList to be 1, got %d", ScreenList)
	}
	if ScreenSearch != 2 {
		t.Errorf("expected ScreenSearch to be 2, got %d", ScreenSearch)
	}
	if ScreenStores != 3 {
		t.Errorf("expected ScreenStores to be 3, got %d", ScreenStores)
	}
}

func TestViewContainsBranding(t *testing.T) {
	app := newTestApp()
	app.width = 100
	app.height = 40

	if !strings.Contains(app.View(), "Shopper") {
		t.Error("expected view to contain the app name")
	}
}

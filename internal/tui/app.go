// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/session"
	"github.com/kdjuwidja/shopper-cli/internal/tui/debuglog"
	"github.com/kdjuwidja/shopper-cli/internal/tui/editlist"
	"github.com/kdjuwidja/shopper-cli/internal/tui/forms"
	"github.com/kdjuwidja/shopper-cli/internal/tui/home"
	"github.com/kdjuwidja/shopper-cli/internal/tui/icons"
	"github.com/kdjuwidja/shopper-cli/internal/tui/searchitem"
	"github.com/kdjuwidja/shopper-cli/internal/tui/storesearch"
	"github.com/kdjuwidja/shopper-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenList
	ScreenSearch
	ScreenStores
	ScreenForm
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before clamping the frame
)

// profileMsg is sent when the profile fetch or save completes
type profileMsg struct {
	profile *session.Profile
	err     error
}

// listsMsg is sent when the shop list overview is loaded
type listsMsg struct {
	lists []client.ShopList
	err   error
}

// listMsg is sent when a single shop list is loaded
type listMsg struct {
	list *client.ShopList
	err  error
}

// actionDoneMsg is sent when a mutation completes; the named data is
// refetched regardless of the outcome
type actionDoneMsg struct {
	err        error
	reloadList int64
	reloadAll  bool
}

// shareCodeMsg is sent when a share code request completes
type shareCodeMsg struct {
	listID int64
	code   string
	err    error
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	store   session.Store
	screen  Screen
	width   int
	height  int
	status  string
	expired bool
	profile *session.Profile

	// Child models
	home       *home.Home
	editList   *editlist.EditList
	search     *searchitem.Search
	stores     *storesearch.StoreSearch
	form       *forms.Form
	formReturn Screen
}

// New creates a new TUI application
func New(apiClient *client.Client, store session.Store) *App {
	return &App{
		client: apiClient,
		store:  store,
		screen: ScreenHome,
		home:   home.New(""),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.loadProfile()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to child models so inputs can resize
		a.forwardToChildren(msg)
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.expired {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case profileMsg:
		return a.handleProfile(msg)

	case listsMsg:
		return a.handleLists(msg)

	case listMsg:
		return a.handleList(msg)

	case actionDoneMsg:
		return a.handleActionDone(msg)

	case shareCodeMsg:
		if a.fail(msg.err) {
			return a, nil
		}
		if a.editList != nil && a.editList.ListID() == msg.listID {
			a.editList.SetShareCode(msg.code)
		}
		return a, nil

	case home.OpenListMsg:
		a.status = "Loading list..."
		return a, a.loadList(msg.ID)

	case home.CreateListMsg:
		return a.openForm(forms.NewCreateList(), ScreenHome)

	case home.JoinListMsg:
		return a.openForm(forms.NewJoin(), ScreenHome)

	case home.LeaveListMsg:
		return a, a.leaveList(msg.ID)

	case editlist.ToggleItemMsg:
		return a, a.toggleItem(msg)

	case editlist.RemoveItemMsg:
		return a, a.removeItem(msg)

	case editlist.EditItemMsg:
		return a.openForm(forms.NewItem(msg.ListID, msg.Item), ScreenList)

	case editlist.AddItemMsg:
		return a.openSearch(msg.ListID)

	case editlist.ShareMsg:
		return a, a.requestShareCode(msg.ListID)

	case editlist.RevokeMsg:
		return a, a.revokeShareCode(msg.ListID)

	case editlist.BackMsg:
		a.screen = ScreenHome
		return a, a.loadLists()

	case searchitem.SearchMsg:
		return a, a.searchFlyers(msg)

	case searchitem.AddFlyerMsg:
		input := client.ItemInput{
			ItemName:  msg.Flyer.ProductName,
			BrandName: msg.Flyer.Brand,
			ExtraInfo: msg.Flyer.Description,
			Thumbnail: msg.Flyer.ImageURL,
		}
		return a, a.addItem(msg.ListID, input)

	case searchitem.AddTermMsg:
		return a, a.addItem(msg.ListID, client.ItemInput{ItemName: msg.Term})

	case searchitem.BackMsg:
		if a.editList != nil {
			a.screen = ScreenList
			return a, a.loadList(a.editList.ListID())
		}
		a.screen = ScreenHome
		return a, a.loadLists()

	case storesearch.SubmitMsg:
		return a.handleStoreSearch(msg)

	case storesearch.BackMsg:
		a.screen = ScreenHome
		return a, nil

	case forms.ProfileDoneMsg:
		a.closeForm()
		a.status = "Saving profile..."
		return a, a.saveProfile(msg.Nickname, msg.PostalCode)

	case forms.CreateListDoneMsg:
		a.closeForm()
		a.status = "Creating list..."
		return a, a.createList(msg.Name)

	case forms.JoinDoneMsg:
		a.closeForm()
		a.status = "Joining list..."
		return a, a.joinList(msg.ShareCode)

	case forms.ItemDoneMsg:
		a.closeForm()
		return a, a.saveItem(msg)

	case forms.CancelledMsg:
		// A missing profile cannot be skipped
		if a.profile == nil {
			return a, tea.Quit
		}
		a.closeForm()
		return a, nil

	default:
		// Forward unknown messages to the active child (timers, spinner
		// ticks, and huh form internals)
		return a, a.forwardToActive(msg)
	}
}

// routeKey sends a key to the active screen after global shortcuts
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenHome:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			a.status = "Refreshing..."
			return a, a.loadLists()
		case "f":
			return a.openSearch(0)
		case "m":
			a.stores = storesearch.New(a.store.LastAddress())
			a.screen = ScreenStores
			return a, a.stores.Init()
		case "p":
			nickname, postal := "", ""
			if a.profile != nil {
				nickname, postal = a.profile.Nickname, a.profile.PostalCode
			}
			return a.openForm(forms.NewProfile(nickname, postal), ScreenHome)
		}
		model, cmd := a.home.Update(msg)
		a.home = model.(*home.Home)
		return a, cmd

	case ScreenList:
		if a.editList == nil {
			return a, nil
		}
		model, cmd := a.editList.Update(msg)
		a.editList = model.(*editlist.EditList)
		return a, cmd

	case ScreenSearch:
		if a.search == nil {
			return a, nil
		}
		model, cmd := a.search.Update(msg)
		a.search = model.(*searchitem.Search)
		return a, cmd

	case ScreenStores:
		if a.stores == nil {
			return a, nil
		}
		model, cmd := a.stores.Update(msg)
		a.stores = model.(*storesearch.StoreSearch)
		return a, cmd

	case ScreenForm:
		if a.form == nil {
			return a, nil
		}
		model, cmd := a.form.Update(msg)
		a.form = model.(*forms.Form)
		return a, cmd
	}

	return a, nil
}

// forwardToActive routes non-key messages to the active screen model
func (a *App) forwardToActive(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenSearch:
		if a.search != nil {
			model, cmd := a.search.Update(msg)
			a.search = model.(*searchitem.Search)
			return cmd
		}
	case ScreenStores:
		if a.stores != nil {
			model, cmd := a.stores.Update(msg)
			a.stores = model.(*storesearch.StoreSearch)
			return cmd
		}
	case ScreenForm:
		if a.form != nil {
			model, cmd := a.form.Update(msg)
			a.form = model.(*forms.Form)
			return cmd
		}
	}
	return nil
}

// forwardToChildren pushes window size changes to every child model
func (a *App) forwardToChildren(msg tea.WindowSizeMsg) {
	if a.home != nil {
		a.home.Update(msg)
	}
	if a.editList != nil {
		a.editList.Update(msg)
	}
	if a.search != nil {
		a.search.Update(msg)
	}
	if a.stores != nil {
		a.stores.Update(msg)
	}
	if a.form != nil {
		a.form.Update(msg)
	}
}

func (a *App) openForm(form *forms.Form, returnTo Screen) (tea.Model, tea.Cmd) {
	a.form = form
	a.formReturn = returnTo
	a.screen = ScreenForm
	return a, form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.screen = a.formReturn
}

func (a *App) openSearch(listID int64) (tea.Model, tea.Cmd) {
	listName := ""
	if listID != 0 && a.editList != nil && a.editList.ListID() == listID {
		listName = a.editListName()
	}
	a.search = searchitem.New(listID, listName)
	a.screen = ScreenSearch
	return a, a.search.Init()
}

func (a *App) editListName() string {
	// Fetched lazily from the home screen data; the detail screen does
	// not expose its name directly
	if sel := a.home.Selected(); sel != nil {
		return sel.Name
	}
	return ""
}

func (a *App) handleProfile(msg profileMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, client.ErrProfileNotFound) {
		return a.openForm(forms.NewProfile("", ""), ScreenHome)
	}
	if a.fail(msg.err) {
		return a, nil
	}

	a.profile = msg.profile
	a.home = home.New(msg.profile.Nickname)
	a.status = "Loading lists..."
	return a, a.loadLists()
}

func (a *App) handleLists(msg listsMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	if a.fail(msg.err) {
		return a, nil
	}
	a.home.SetLists(msg.lists)
	if a.screen != ScreenStores && a.screen != ScreenSearch && a.screen != ScreenForm {
		a.screen = ScreenHome
	}
	return a, nil
}

func (a *App) handleList(msg listMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	if errors.Is(msg.err, client.ErrShopListNotFound) {
		// The list disappeared under us; fall back to the overview
		a.editList = nil
		a.screen = ScreenHome
		return a, a.loadLists()
	}
	if a.fail(msg.err) {
		return a, nil
	}

	if a.editList != nil && a.editList.ListID() == msg.list.ID {
		a.editList.SetList(msg.list)
	} else {
		a.editList = editlist.New(msg.list)
	}
	// Stay put when the reload was triggered from the search screen
	if a.screen == ScreenHome || a.screen == ScreenList {
		a.screen = ScreenList
	}
	return a, nil
}

func (a *App) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, client.ErrSessionExpired) {
		a.expired = true
		return a, nil
	}
	if msg.err != nil {
		a.status = "Error: " + msg.err.Error()
		debuglog.Error("action", msg.err)
	}

	// Refetch regardless of outcome so the view reflects server state
	if msg.reloadList != 0 {
		return a, a.loadList(msg.reloadList)
	}
	if msg.reloadAll {
		return a, a.loadLists()
	}
	return a, nil
}

func (a *App) handleStoreSearch(msg storesearch.SubmitMsg) (tea.Model, tea.Cmd) {
	// Remember the address for next time
	if err := a.store.SetLastAddress(msg.Address); err != nil {
		debuglog.Error("save address", err)
	}
	debuglog.Log("store search", "product", msg.Product, "distance_km", msg.DistanceKm)
	if a.stores != nil {
		a.stores.SetNotice(fmt.Sprintf("Store lookup for %q within %.0f km is not available yet.", msg.Product, msg.DistanceKm))
	}
	return a, nil
}

// fail records an error, detecting session expiry
func (a *App) fail(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, client.ErrSessionExpired) {
		a.expired = true
		return true
	}
	a.status = "Error: " + err.Error()
	debuglog.Error("request", err)
	return true
}

// Commands

func (a *App) loadProfile() tea.Cmd {
	return func() tea.Msg {
		profile, err := a.client.FetchProfile(context.Background())
		return profileMsg{profile: profile, err: err}
	}
}

func (a *App) saveProfile(nickname, postalCode string) tea.Cmd {
	return func() tea.Msg {
		profile, err := a.client.SaveProfile(context.Background(), nickname, postalCode)
		return profileMsg{profile: profile, err: err}
	}
}

func (a *App) loadLists() tea.Cmd {
	return func() tea.Msg {
		lists, err := a.client.ShopLists(context.Background())
		return listsMsg{lists: lists, err: err}
	}
}

func (a *App) loadList(id int64) tea.Cmd {
	return func() tea.Msg {
		list, err := a.client.ShopList(context.Background(), id)
		return listMsg{list: list, err: err}
	}
}

func (a *App) createList(name string) tea.Cmd {
	return func() tea.Msg {
		err := a.client.CreateShopList(context.Background(), name)
		return actionDoneMsg{err: err, reloadAll: true}
	}
}

func (a *App) joinList(shareCode string) tea.Cmd {
	return func() tea.Msg {
		err := a.client.JoinShopList(context.Background(), shareCode)
		return actionDoneMsg{err: err, reloadAll: true}
	}
}

func (a *App) leaveList(id int64) tea.Cmd {
	return func() tea.Msg {
		err := a.client.LeaveShopList(context.Background(), id)
		return actionDoneMsg{err: err, reloadAll: true}
	}
}

func (a *App) toggleItem(msg editlist.ToggleItemMsg) tea.Cmd {
	return func() tea.Msg {
		bought := msg.Bought
		err := a.client.EditItem(context.Background(), msg.ListID, msg.ItemID, client.ItemPatch{IsBought: &bought})
		return actionDoneMsg{err: err, reloadList: msg.ListID}
	}
}

func (a *App) removeItem(msg editlist.RemoveItemMsg) tea.Cmd {
	return func() tea.Msg {
		err := a.client.RemoveItem(context.Background(), msg.ListID, msg.ItemID)
		return actionDoneMsg{err: err, reloadList: msg.ListID}
	}
}

func (a *App) addItem(listID int64, input client.ItemInput) tea.Cmd {
	return func() tea.Msg {
		err := a.client.AddItem(context.Background(), listID, input)
		return actionDoneMsg{err: err, reloadList: listID}
	}
}

func (a *App) saveItem(msg forms.ItemDoneMsg) tea.Cmd {
	return func() tea.Msg {
		patch := client.ItemPatch{ItemName: &msg.Name, BrandName: &msg.Brand, ExtraInfo: &msg.Note}
		err := a.client.EditItem(context.Background(), msg.ListID, msg.ItemID, patch)
		return actionDoneMsg{err: err, reloadList: msg.ListID}
	}
}

func (a *App) requestShareCode(listID int64) tea.Cmd {
	return func() tea.Msg {
		code, err := a.client.ShareCode(context.Background(), listID)
		return shareCodeMsg{listID: listID, code: code, err: err}
	}
}

func (a *App) revokeShareCode(listID int64) tea.Cmd {
	return func() tea.Msg {
		err := a.client.RevokeShareCode(context.Background(), listID)
		return actionDoneMsg{err: err, reloadList: listID}
	}
}

func (a *App) searchFlyers(msg searchitem.SearchMsg) tea.Cmd {
	return func() tea.Msg {
		flyers, err := a.client.SearchFlyers(context.Background(), msg.Term)
		return searchitem.ResultsMsg{Seq: msg.Seq, Flyers: flyers, Err: err}
	}
}

// View implements tea.Model

func (a *App) View() string {
	if a.expired {
		body := styles.StatusCritical.Render("Session expired.") +
			"\nRun 'shopper login' to sign in again, then restart the app." +
			styles.Help.Render("\n\nPress any key to exit.")
		return a.wrapWithFrame(body)
	}

	var content string
	switch a.screen {
	case ScreenHome:
		content = a.home.View()
	case ScreenList:
		if a.editList != nil {
			content = a.editList.View()
		}
	case ScreenSearch:
		if a.search != nil {
			content = a.search.View()
		}
	case ScreenStores:
		if a.stores != nil {
			content = a.stores.View()
		}
	case ScreenForm:
		if a.form != nil {
			content = a.form.View()
		}
	}

	if a.status != "" {
		content += "\n\n" + styles.Subtitle.Render(a.status)
	}

	return a.wrapWithFrame(content)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Shopper"))

	rightText := ""
	if a.profile != nil {
		rightText = contextStyle.Render(a.profile.Nickname) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenHome:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "n New", "J Join", "x Leave", "f Flyers", "m Stores", "p Profile", "r Refresh", "q Quit"}
	case ScreenList:
		shortcuts = []string{"↑↓ Navigate", "Space Toggle", "a Add", "e Edit", "d Delete", "s Share", "S Revoke", "b Back"}
	case ScreenSearch:
		shortcuts = []string{"Type Search", "↓ Results", "Enter Add", "a AddTerm", "Esc Back"}
	case ScreenStores:
		shortcuts = []string{"Tab Next", "Enter Search", "Esc Back"}
	case ScreenForm:
		shortcuts = []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	leftWidth := lipgloss.Width(leftPlainText)
	fillWidth := width - 4 - leftWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, store session.Store) error {
	app := New(apiClient, store)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	start := time.Now()
	_, err := p.Run()
	debuglog.Log("session ended", "duration", time.Since(start).String())
	return err
}

// ABOUTME: Modal huh forms embedded in the TUI as bubbletea models
// ABOUTME: Covers profile setup, list creation, joining, and item editing

package forms

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/tui/styles"
)

// ProfileDoneMsg is sent when the profile form completes
type ProfileDoneMsg struct {
	Nickname   string
	PostalCode string
}

// CreateListDoneMsg is sent when the create list form completes
type CreateListDoneMsg struct {
	Name string
}

// JoinDoneMsg is sent when the join form completes
type JoinDoneMsg struct {
	ShareCode string
}

// ItemDoneMsg is sent when the item edit form completes
type ItemDoneMsg struct {
	ListID int64
	ItemID int64
	Name   string
	Brand  string
	Note   string
}

// CancelledMsg is sent when any form is cancelled
type CancelledMsg struct{}

type kind int

const (
	kindProfile kind = iota
	kindCreateList
	kindJoin
	kindItem
)

// Form wraps a huh form so it can run inside the application loop
type Form struct {
	form  *huh.Form
	kind  kind
	width int

	// Field values bound to the form
	nickname   string
	postalCode string
	listName   string
	shareCode  string
	itemName   string
	itemBrand  string
	itemNote   string

	// Item edit target
	listID int64
	itemID int64
}

// createTheme returns a huh theme matching the application palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Info).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// NewProfile creates the profile setup form, prefilled with any existing values
func NewProfile(nickname, postalCode string) *Form {
	f := &Form{kind: kindProfile, nickname: nickname, postalCode: postalCode}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nickname").
				Description("How you appear to list members").
				CharLimit(32).
				Value(&f.nickname).
				Validate(validateNonEmpty),
			huh.NewInput().
				Title("Postal code").
				Description("Letters and digits alternating, e.g. A1B2C3").
				CharLimit(6).
				Value(&f.postalCode).
				Validate(validatePostalCode),
		).Title("Set up your profile").
			Description("A profile is needed before using shop lists"),
	).WithTheme(createTheme())
	return f
}

// NewCreateList creates the new shop list form
func NewCreateList() *Form {
	f := &Form{kind: kindCreateList}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("List name").
				Placeholder("e.g. Weekly groceries").
				CharLimit(64).
				Value(&f.listName).
				Validate(validateNonEmpty),
		).Title("Create shop list"),
	).WithTheme(createTheme())
	return f
}

// NewJoin creates the join-by-share-code form
func NewJoin() *Form {
	f := &Form{kind: kindJoin}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Share code").
				Description("Ask the list owner for their share code").
				CharLimit(32).
				Value(&f.shareCode).
				Validate(validateNonEmpty),
		).Title("Join shop list"),
	).WithTheme(createTheme())
	return f
}

// NewItem creates the item edit form, prefilled from the current item
func NewItem(listID int64, item client.ShopListItem) *Form {
	f := &Form{
		kind:      kindItem,
		listID:    listID,
		itemID:    item.ID,
		itemName:  item.ItemName,
		itemBrand: item.BrandName,
		itemNote:  item.ExtraInfo,
	}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Item name").
				CharLimit(64).
				Value(&f.itemName).
				Validate(validateNonEmpty),
			huh.NewInput().
				Title("Brand").
				CharLimit(64).
				Value(&f.itemBrand),
			huh.NewInput().
				Title("Note").
				CharLimit(128).
				Value(&f.itemNote),
		).Title("Edit item"),
	).WithTheme(createTheme())
	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if m, ok := form.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted {
		return f, f.complete()
	}

	return f, cmd
}

func (f *Form) complete() tea.Cmd {
	switch f.kind {
	case kindProfile:
		done := ProfileDoneMsg{
			Nickname:   strings.TrimSpace(f.nickname),
			PostalCode: strings.ToUpper(strings.TrimSpace(f.postalCode)),
		}
		return func() tea.Msg { return done }
	case kindCreateList:
		done := CreateListDoneMsg{Name: strings.TrimSpace(f.listName)}
		return func() tea.Msg { return done }
	case kindJoin:
		done := JoinDoneMsg{ShareCode: strings.TrimSpace(f.shareCode)}
		return func() tea.Msg { return done }
	case kindItem:
		done := ItemDoneMsg{
			ListID: f.listID,
			ItemID: f.itemID,
			Name:   strings.TrimSpace(f.itemName),
			Brand:  strings.TrimSpace(f.itemBrand),
			Note:   strings.TrimSpace(f.itemNote),
		}
		return func() tea.Msg { return done }
	}
	return nil
}

// View implements tea.Model
func (f *Form) View() string {
	return f.form.View()
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func validatePostalCode(s string) error {
	if !client.ValidPostalCode(strings.ToUpper(strings.TrimSpace(s))) {
		return errors.New("expected letters and digits alternating, e.g. A1B2C3")
	}
	return nil
}

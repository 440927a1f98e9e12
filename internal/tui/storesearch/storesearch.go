// ABOUTME: Store search screen for finding nearby stores carrying a product
// ABOUTME: Collects product, distance, and address; lookup is not live yet

package storesearch

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kdjuwidja/shopper-cli/internal/tui/icons"
	"github.com/kdjuwidja/shopper-cli/internal/tui/styles"
)

// SubmitMsg is sent when the user submits a store search
type SubmitMsg struct {
	Product    string
	DistanceKm float64
	Address    string
}

// BackMsg is sent when the user leaves the screen
type BackMsg struct{}

const fieldCount = 3

// StoreSearch is the store lookup model
type StoreSearch struct {
	product  textinput.Model
	distance textinput.Model
	address  textinput.Model
	focus    int
	errMsg   string
	notice   string
	width    int
}

// New creates the store search screen. The address is primed from the
// last one used so repeat searches start where the user left off.
func New(lastAddress string) *StoreSearch {
	product := textinput.New()
	product.Placeholder = "Product, e.g. milk"
	product.CharLimit = 64
	product.Focus()

	distance := textinput.New()
	distance.Placeholder = "Distance in km, e.g. 5"
	distance.CharLimit = 6

	address := textinput.New()
	address.Placeholder = "Address or postal code"
	address.CharLimit = 128
	address.SetValue(lastAddress)

	return &StoreSearch{product: product, distance: distance, address: address}
}

// Init implements tea.Model
func (s *StoreSearch) Init() tea.Cmd {
	return textinput.Blink
}

// SetNotice displays a status line under the form
func (s *StoreSearch) SetNotice(notice string) {
	s.notice = notice
}

// Update implements tea.Model
func (s *StoreSearch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return BackMsg{} }
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return s.submit()
		}

		var cmd tea.Cmd
		switch s.focus {
		case 0:
			s.product, cmd = s.product.Update(msg)
		case 1:
			s.distance, cmd = s.distance.Update(msg)
		case 2:
			s.address, cmd = s.address.Update(msg)
		}
		return s, cmd
	}

	return s, nil
}

func (s *StoreSearch) setFocus(focus int) tea.Cmd {
	s.focus = focus
	inputs := []*textinput.Model{&s.product, &s.distance, &s.address}
	for i, input := range inputs {
		if i == focus {
			input.Focus()
		} else {
			input.Blur()
		}
	}
	return textinput.Blink
}

func (s *StoreSearch) submit() (tea.Model, tea.Cmd) {
	product := strings.TrimSpace(s.product.Value())
	address := strings.TrimSpace(s.address.Value())
	distanceRaw := strings.TrimSpace(s.distance.Value())

	if product == "" {
		s.errMsg = "Enter a product to search for."
		return s, nil
	}
	if address == "" {
		s.errMsg = "Enter an address to search near."
		return s, nil
	}
	distance := 5.0
	if distanceRaw != "" {
		parsed, err := strconv.ParseFloat(distanceRaw, 64)
		if err != nil || parsed <= 0 {
			s.errMsg = "Distance must be a positive number of km."
			return s, nil
		}
		distance = parsed
	}

	s.errMsg = ""
	submit := SubmitMsg{Product: product, DistanceKm: distance, Address: address}
	return s, func() tea.Msg { return submit }
}

// View implements tea.Model
func (s *StoreSearch) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Store.String() + " Store Search"))
	sb.WriteString("\n\n")

	sb.WriteString("Product:  " + s.product.View() + "\n")
	sb.WriteString("Distance: " + s.distance.View() + "\n")
	sb.WriteString(icons.Location.String() + " Near:   " + s.address.View() + "\n\n")

	if s.errMsg != "" {
		sb.WriteString(styles.StatusWarning.Render(s.errMsg))
		sb.WriteString("\n")
	}
	if s.notice != "" {
		sb.WriteString(styles.Subtitle.Render(s.notice))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

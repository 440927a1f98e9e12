// ABOUTME: Flyer search screen with debounced queries
// ABOUTME: Fires one search per typing pause and adds results to a shop list

package searchitem

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kdjuwidja/shopper-cli/internal/client"
	"github.com/kdjuwidja/shopper-cli/internal/tui/icons"
	"github.com/kdjuwidja/shopper-cli/internal/tui/styles"
	"github.com/kdjuwidja/shopper-cli/internal/tui/widgets"
)

// DebounceDelay is the typing pause before a search fires
const DebounceDelay = 1000 * time.Millisecond

// SearchMsg asks the application to run a flyer search
type SearchMsg struct {
	Term string
	Seq  int
}

// ResultsMsg delivers flyer search results back to the screen
type ResultsMsg struct {
	Seq    int
	Flyers []client.Flyer
	Err    error
}

// AddFlyerMsg is sent when the user adds a flyer product to the target list
type AddFlyerMsg struct {
	ListID int64
	Flyer  client.Flyer
}

// AddTermMsg is sent when the user adds the raw search term to the target list
type AddTermMsg struct {
	ListID int64
	Term   string
}

// BackMsg is sent when the user leaves the screen
type BackMsg struct{}

// debounceMsg carries the sequence number of the keystroke that scheduled it
type debounceMsg struct {
	seq int
}

// Search is the flyer search model
type Search struct {
	input        textinput.Model
	spin         spinner.Model
	listID       int64
	listName     string
	seq          int
	searching    bool
	searched     bool
	term         string
	results      []client.Flyer
	err          error
	cursor       int
	focusResults bool
	width        int
}

// New creates the flyer search screen. A zero listID means browse-only:
// results can be viewed but not added to a list.
func New(listID int64, listName string) *Search {
	input := textinput.New()
	input.Placeholder = "Search flyers, e.g. apples"
	input.CharLimit = 64
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Search{input: input, spin: spin, listID: listID, listName: listName}
}

// Init implements tea.Model
func (s *Search) Init() tea.Cmd {
	return textinput.Blink
}

// Seq returns the current debounce sequence number
func (s *Search) Seq() int {
	return s.seq
}

// Searching reports whether a search is in flight
func (s *Search) Searching() bool {
	return s.searching
}

// Results returns the current flyer results
func (s *Search) Results() []client.Flyer {
	return s.results
}

// Update implements tea.Model
func (s *Search) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case debounceMsg:
		// Stale timers from earlier keystrokes are ignored
		if msg.seq != s.seq {
			return s, nil
		}
		return s, s.fireSearch()

	case ResultsMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		s.searching = false
		s.searched = true
		s.results = msg.Flyers
		s.err = msg.Err
		s.cursor = 0
		return s, nil

	case spinner.TickMsg:
		if !s.searching {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.focusResults {
			return s.updateResults(msg)
		}
		return s.updateInput(msg)
	}

	return s, nil
}

func (s *Search) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return BackMsg{} }
	case "enter":
		// Skip the remaining debounce wait and search immediately
		s.seq++
		return s, s.fireSearch()
	case "down", "tab":
		if len(s.results) > 0 {
			s.focusResults = true
			s.input.Blur()
		}
		return s, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return s, cmd
	}

	// Each keystroke restarts the debounce window
	s.seq++
	seq := s.seq
	debounce := tea.Tick(DebounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
	return s, tea.Batch(cmd, debounce)
}

func (s *Search) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		s.focusResults = false
		s.input.Focus()
		return s, textinput.Blink
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		} else {
			s.focusResults = false
			s.input.Focus()
			return s, textinput.Blink
		}
	case "down", "j":
		if s.cursor < len(s.results)-1 {
			s.cursor++
		}
	case "enter":
		if s.listID != 0 && s.cursor >= 0 && s.cursor < len(s.results) {
			add := AddFlyerMsg{ListID: s.listID, Flyer: s.results[s.cursor]}
			return s, func() tea.Msg { return add }
		}
	case "a":
		if s.listID != 0 && strings.TrimSpace(s.input.Value()) != "" {
			add := AddTermMsg{ListID: s.listID, Term: strings.TrimSpace(s.input.Value())}
			return s, func() tea.Msg { return add }
		}
	}
	return s, nil
}

// fireSearch starts a search for the current input, or clears results
// when the input is empty
func (s *Search) fireSearch() tea.Cmd {
	term := strings.TrimSpace(s.input.Value())
	if term == "" {
		s.results = nil
		s.err = nil
		s.searching = false
		s.searched = false
		s.focusResults = false
		return nil
	}

	s.term = term
	s.searching = true
	s.err = nil
	seq := s.seq
	search := func() tea.Msg { return SearchMsg{Term: term, Seq: seq} }
	return tea.Batch(search, s.spin.Tick)
}

// View implements tea.Model
func (s *Search) View() string {
	var sb strings.Builder

	title := icons.Search.String() + " Flyer Search"
	if s.listName != "" {
		title += "  " + styles.Subtitle.Render("adding to "+s.listName)
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n\n")

	sb.WriteString(s.input.View())
	sb.WriteString("\n\n")

	switch {
	case s.searching:
		sb.WriteString(s.spin.View() + " Searching...")
	case s.err != nil:
		sb.WriteString(styles.StatusCritical.Render("Error: " + s.err.Error()))
	case s.searched && len(s.results) == 0:
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("No deals for %q.", s.term)))
	default:
		sb.WriteString(s.viewResults())
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (s *Search) viewResults() string {
	if len(s.results) == 0 {
		return styles.Subtitle.Render("Type to search current flyer deals.")
	}

	var sb strings.Builder
	for i, flyer := range s.results {
		cursor := "  "
		if s.focusResults && i == s.cursor {
			cursor = styles.Cursor.Render("> ")
		}

		line := cursor + icons.Flyer.String() + " " + flyer.ProductName
		if flyer.Brand != "" {
			line += " (" + flyer.Brand + ")"
		}
		line += "  " + styles.Store.Render(flyer.Store)
		if price := widgets.PriceText(flyer.PrePriceText, flyer.PriceText, flyer.PostPriceText); price != "" {
			line += "  " + styles.Price.Render(price)
		}
		if window := flyer.ValidityWindow(); window != "" {
			line += "  " + styles.Subtitle.Render("Valid: "+window)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

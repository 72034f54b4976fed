package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tango/internal/theme"
)

// SearchBar is the query input at the top of the screen.
type SearchBar struct {
	input  textinput.Model
	active bool
	width  int
}

// NewSearchBar creates a new search bar.
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search a word (kanji, kana or romaji)..."
	ti.CharLimit = 256
	ti.Width = 60

	return SearchBar{
		input: ti,
	}
}

// SetWidth updates the search bar width.
func (b *SearchBar) SetWidth(w int) {
	b.width = w
	b.input.Width = w - 8 // account for prompt and padding
}

// Focus activates the search bar for input.
func (b *SearchBar) Focus() tea.Cmd {
	b.active = true
	return b.input.Focus()
}

// Blur deactivates the search bar.
func (b *SearchBar) Blur() {
	b.active = false
	b.input.Blur()
}

// IsActive reports whether the search bar is focused.
func (b *SearchBar) IsActive() bool {
	return b.active
}

// Value returns the current input text.
func (b *SearchBar) Value() string {
	return b.input.Value()
}

// SetValue sets the search bar text.
func (b *SearchBar) SetValue(s string) {
	b.input.SetValue(s)
}

// Reset clears the search bar.
func (b *SearchBar) Reset() {
	b.input.Reset()
}

// Update handles messages for the search bar.
func (b *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	if !b.active {
		return b, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

// View renders the search bar.
func (b *SearchBar) View() string {
	t := theme.Current

	border := t.Border
	fg := t.TextDim
	if b.active {
		border = t.BorderFocus
		fg = t.Text
	}

	barStyle := lipgloss.NewStyle().
		Foreground(fg).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(b.width - 2)

	promptStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	content := promptStyle.Render("辞") + " " + b.input.View()

	return barStyle.Render(content)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tango/internal/theme"
)

// ResultsViewport wraps bubbles/viewport for scrolling search results.
type ResultsViewport struct {
	viewport   viewport.Model
	ready      bool
	contentSet bool
}

// NewResultsViewport creates a new viewport (dimensions set on first WindowSizeMsg).
func NewResultsViewport() ResultsViewport {
	return ResultsViewport{}
}

// SetSize updates the viewport dimensions.
func (rv *ResultsViewport) SetSize(width, height int) {
	if !rv.ready {
		rv.viewport = viewport.New(width, height)
		rv.viewport.MouseWheelEnabled = true
		rv.viewport.MouseWheelDelta = 3
		rv.ready = true
	} else {
		rv.viewport.Width = width
		rv.viewport.Height = height
	}
}

// SetContent replaces the viewport content.
func (rv *ResultsViewport) SetContent(content string) {
	if !rv.ready {
		return
	}
	rv.viewport.SetContent(content)
	rv.contentSet = true
	rv.viewport.GotoTop()
}

// Update forwards messages to the viewport.
func (rv *ResultsViewport) Update(msg tea.Msg) (*ResultsViewport, tea.Cmd) {
	if !rv.ready {
		return rv, nil
	}
	var cmd tea.Cmd
	rv.viewport, cmd = rv.viewport.Update(msg)
	return rv, cmd
}

// View renders the viewport.
func (rv *ResultsViewport) View() string {
	if !rv.ready {
		return "\n  Initializing..."
	}
	if !rv.contentSet {
		return rv.renderWelcome()
	}
	return rv.viewport.View()
}

// ScrollInfo returns a string like "42%" or "TOP" or "BOT".
func (rv *ResultsViewport) ScrollInfo() string {
	if !rv.ready || !rv.contentSet {
		return ""
	}
	pct := rv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// HalfPageDown scrolls down half a page.
func (rv *ResultsViewport) HalfPageDown() {
	if rv.ready {
		rv.viewport.HalfViewDown()
	}
}

// HalfPageUp scrolls up half a page.
func (rv *ResultsViewport) HalfPageUp() {
	if rv.ready {
		rv.viewport.HalfViewUp()
	}
}

// LineDown scrolls down n lines.
func (rv *ResultsViewport) LineDown(n int) {
	if rv.ready {
		rv.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (rv *ResultsViewport) LineUp(n int) {
	if rv.ready {
		rv.viewport.LineUp(n)
	}
}

// Width returns the viewport width.
func (rv *ResultsViewport) Width() int {
	if !rv.ready {
		return 0
	}
	return rv.viewport.Width
}

func (rv *ResultsViewport) renderWelcome() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("\n  単語 tango"))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("  Japanese dictionary search"))
	sb.WriteString("\n\n")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Search the typed word"},
		{"Esc", "Leave the search bar"},
		{"/ or i", "Back to the search bar"},
		{"Tab / r", "Pick from recent searches"},
		{"j / k", "Scroll results / move in recent"},
		{"Ctrl+x", "Clear recent searches"},
		{"q", "Quit"},
	}

	for _, s := range shortcuts {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("  %-10s", s.key)))
		sb.WriteString(descStyle.Render(s.desc))
		sb.WriteString("\n")
	}

	return sb.String()
}

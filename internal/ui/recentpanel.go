package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tango/internal/browser"
	"github.com/vidyasagar/tango/internal/theme"
)

// RecentPanel lists recent searches, most recent first, with vim navigation.
type RecentPanel struct {
	entries []browser.Link
	cursor  int
	offset  int // scroll offset for visible window
	width   int
	height  int
	focused bool
}

// NewRecentPanel creates a new recent-searches panel.
func NewRecentPanel() RecentPanel {
	return RecentPanel{}
}

// SetEntries replaces the listed terms and moves the cursor to the top.
func (rp *RecentPanel) SetEntries(entries []browser.Link) {
	rp.entries = entries
	rp.cursor = 0
	rp.offset = 0
}

// Len returns the number of listed terms.
func (rp *RecentPanel) Len() int {
	return len(rp.entries)
}

// SetSize updates the panel dimensions.
func (rp *RecentPanel) SetSize(w, h int) {
	rp.width = w
	rp.height = h
	rp.ensureVisible()
}

// Focus gives the panel keyboard focus.
func (rp *RecentPanel) Focus() {
	rp.focused = true
}

// Blur removes keyboard focus.
func (rp *RecentPanel) Blur() {
	rp.focused = false
}

// IsFocused reports whether the panel has keyboard focus.
func (rp *RecentPanel) IsFocused() bool {
	return rp.focused
}

// CursorUp moves the cursor up one entry.
func (rp *RecentPanel) CursorUp() {
	if rp.cursor > 0 {
		rp.cursor--
		rp.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (rp *RecentPanel) CursorDown() {
	if rp.cursor < len(rp.entries)-1 {
		rp.cursor++
		rp.ensureVisible()
	}
}

// GotoTop moves to the first entry.
func (rp *RecentPanel) GotoTop() {
	rp.cursor = 0
	rp.offset = 0
}

// GotoBottom moves to the last entry.
func (rp *RecentPanel) GotoBottom() {
	if len(rp.entries) > 0 {
		rp.cursor = len(rp.entries) - 1
		rp.ensureVisible()
	}
}

// Selected returns the entry at the cursor, or false if the panel is empty.
func (rp *RecentPanel) Selected() (browser.Link, bool) {
	if len(rp.entries) == 0 || rp.cursor < 0 || rp.cursor >= len(rp.entries) {
		return browser.Link{}, false
	}
	return rp.entries[rp.cursor], true
}

// SelectedIndex returns the cursor index.
func (rp *RecentPanel) SelectedIndex() int {
	return rp.cursor
}

// visibleCount returns how many entries fit: 2 header lines, 2 lines per entry.
func (rp *RecentPanel) visibleCount() int {
	available := rp.height - 3
	if available <= 0 {
		return 1
	}
	count := available / 2
	if count < 1 {
		count = 1
	}
	return count
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (rp *RecentPanel) ensureVisible() {
	visible := rp.visibleCount()
	if rp.cursor < rp.offset {
		rp.offset = rp.cursor
	}
	if rp.cursor >= rp.offset+visible {
		rp.offset = rp.cursor - visible + 1
	}
	if rp.offset < 0 {
		rp.offset = 0
	}
}

// View renders the panel.
func (rp *RecentPanel) View() string {
	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(rp.width).
		Height(rp.height)

	titleFg := t.TextDim
	if rp.focused {
		titleFg = t.Primary
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleFg).
		Background(t.Surface).
		Width(rp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Selected).
		Bold(true).
		Width(rp.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(rp.width).
		Padding(0, 1)

	urlStyle := lipgloss.NewStyle().
		Foreground(t.Link).
		Width(rp.width).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🕘 Recent"))
	sb.WriteString("\n")

	sepWidth := rp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if len(rp.entries) == 0 {
		sb.WriteString(dimStyle.Render("No recent searches."))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := rp.visibleCount()
	end := rp.offset + visible
	if end > len(rp.entries) {
		end = len(rp.entries)
	}

	maxLen := rp.width - 6
	if maxLen < 10 {
		maxLen = 10
	}

	for i := rp.offset; i < end; i++ {
		e := rp.entries[i]
		term := truncate(e.Text, maxLen)
		u := truncate(e.URL, maxLen)

		if rp.focused && i == rp.cursor {
			sb.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %d %s", e.Index, term)))
		} else {
			sb.WriteString(normalStyle.Render(fmt.Sprintf("  %d %s", e.Index, term)))
		}
		sb.WriteString("\n")
		sb.WriteString(urlStyle.Render("    " + u))
		sb.WriteString("\n")
	}

	if rp.focused {
		hintStyle := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Italic(true).
			Padding(0, 1)
		sb.WriteString(hintStyle.Render("j/k:move  Enter:search  ^x:clear"))
	}

	return panelStyle.Render(sb.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

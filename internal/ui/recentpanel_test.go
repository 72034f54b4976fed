package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vidyasagar/tango/internal/browser"
)

func links(terms ...string) []browser.Link {
	out := make([]browser.Link, len(terms))
	for i, term := range terms {
		out[i] = browser.Link{Index: i + 1, Text: term, URL: "/search?query=" + term}
	}
	return out
}

func TestRecentPanelNavigation(t *testing.T) {
	rp := NewRecentPanel()
	rp.SetSize(30, 20)

	_, ok := rp.Selected()
	assert.False(t, ok)

	rp.SetEntries(links("cat", "dog", "bird"))
	assert.Equal(t, 3, rp.Len())

	rp.CursorUp()
	assert.Equal(t, 0, rp.SelectedIndex())

	rp.CursorDown()
	rp.CursorDown()
	rp.CursorDown()
	sel, ok := rp.Selected()
	assert.True(t, ok)
	assert.Equal(t, "bird", sel.Text)

	rp.GotoTop()
	sel, _ = rp.Selected()
	assert.Equal(t, "cat", sel.Text)

	rp.GotoBottom()
	assert.Equal(t, 2, rp.SelectedIndex())

	rp.SetEntries(links("e"))
	assert.Equal(t, 0, rp.SelectedIndex())
}

func TestRecentPanelScrolls(t *testing.T) {
	rp := NewRecentPanel()
	rp.SetSize(30, 7) // room for two entries
	rp.SetEntries(links("a", "b", "c", "d"))

	rp.GotoBottom()
	assert.Equal(t, 2, rp.offset)
	rp.GotoTop()
	assert.Equal(t, 0, rp.offset)
}

func TestRecentPanelView(t *testing.T) {
	rp := NewRecentPanel()
	rp.SetSize(40, 20)
	assert.Contains(t, rp.View(), "No recent searches.")

	rp.SetEntries(links("cat", "dog"))
	rp.Focus()
	view := rp.View()
	assert.Contains(t, view, "cat")
	assert.Contains(t, view, "/search?query=dog")
	assert.Contains(t, view, "Enter:search")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijkl", 10))
	assert.Equal(t, "ねこねこね...", truncate("ねこねこねこねこねこ", 8))
}

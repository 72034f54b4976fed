package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vidyasagar/tango/internal/recent"
	"github.com/vidyasagar/tango/internal/render"
	"github.com/vidyasagar/tango/internal/search"
	"github.com/vidyasagar/tango/internal/theme"
	"github.com/vidyasagar/tango/internal/ui"
	"go.uber.org/zap"
)

const searchTimeout = 20 * time.Second

// Mode represents the current input mode.
type Mode int

const (
	ModeInsert Mode = iota // search bar focused
	ModeNormal             // scrolling results
	ModeRecent             // recent panel focused
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeRecent:
		return "RECENT"
	default:
		return "NORMAL"
	}
}

// Searcher runs queries against the dictionary search endpoint.
type Searcher interface {
	URL(term string) string
	Search(ctx context.Context, term string) ([]search.Result, error)
}

// Model is the top-level bubbletea model for tango.
type Model struct {
	// UI components
	searchBar   ui.SearchBar
	recentPanel ui.RecentPanel
	results     ui.ResultsViewport
	statusBar   ui.StatusBar

	recents  *recent.List
	searcher Searcher
	logger   *zap.Logger

	// Results of earlier searches, keyed by term.
	resultCache *lru.Cache[string, []search.Result]

	keys   KeyMap
	mode   Mode
	width  int
	height int
	ready  bool

	// seq identifies the latest search so stale responses are dropped.
	seq    int
	cancel context.CancelFunc
	query  string
}

// recentLoadedMsg carries the stored recent list on startup.
type recentLoadedMsg struct {
	terms []string
}

// searchDoneMsg is sent when a search finishes.
type searchDoneMsg struct {
	seq     int
	term    string
	results []search.Result
	err     error
}

// New creates a new tango Model.
func New(recents *recent.List, searcher Searcher, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	resultCache, _ := lru.New[string, []search.Result](32)

	m := Model{
		searchBar:   ui.NewSearchBar(),
		recentPanel: ui.NewRecentPanel(),
		results:     ui.NewResultsViewport(),
		statusBar:   ui.NewStatusBar(),
		recents:     recents,
		searcher:    searcher,
		logger:      logger,
		resultCache: resultCache,
		keys:        DefaultKeyMap(),
		mode:        ModeInsert,
	}
	m.searchBar.Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	recents := m.recents
	return func() tea.Msg {
		return recentLoadedMsg{terms: recents.Load()}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case recentLoadedMsg:
		m.setRecent(msg.terms)
		return m, nil

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeInsert:
		_, cmd = m.searchBar.Update(msg)
	case ModeNormal:
		_, cmd = m.results.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tango..."
	}

	t := theme.Current
	bodyHeight := m.bodyHeight()

	dividerLines := make([]string, bodyHeight)
	for i := range dividerLines {
		dividerLines[i] = "│"
	}
	divider := lipgloss.NewStyle().
		Foreground(t.Border).
		Render(strings.Join(dividerLines, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.recentPanel.View(),
		divider,
		m.results.View(),
	)

	m.statusBar.SetScrollInfo(m.results.ScrollInfo())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.searchBar.View(),
		body,
		m.statusBar.View(),
	)
}

func (m *Model) bodyHeight() int {
	searchBarHeight := 3 // border adds height
	statusBarHeight := 1
	h := m.height - searchBarHeight - statusBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.searchBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	bodyHeight := m.bodyHeight()
	panelWidth := m.width * 30 / 100
	if panelWidth < 20 {
		panelWidth = 20
	}
	m.recentPanel.SetSize(panelWidth, bodyHeight)

	resultsWidth := m.width - panelWidth - 1 // -1 for divider
	if resultsWidth < 1 {
		resultsWidth = 1
	}
	m.results.SetSize(resultsWidth, bodyHeight)
}

func (m *Model) setMode(mode Mode) tea.Cmd {
	m.mode = mode
	m.statusBar.SetMode(mode.String())

	var cmd tea.Cmd
	if mode == ModeInsert {
		cmd = m.searchBar.Focus()
	} else {
		m.searchBar.Blur()
	}
	if mode == ModeRecent {
		m.recentPanel.Focus()
	} else {
		m.recentPanel.Blur()
	}
	return cmd
}

// setRecent renders terms as the recent panel's entries.
func (m *Model) setRecent(terms []string) {
	_, links := render.Recent(terms, m.searcher)
	m.recentPanel.SetEntries(links)
	m.statusBar.SetRecentCount(len(terms), m.recents.Capacity())
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.cancelSearch()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.ClearRecent) {
		return m.clearRecent()
	}

	switch m.mode {
	case ModeInsert:
		return m.handleInsertMode(msg)
	case ModeRecent:
		return m.handleRecentMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		term := strings.TrimSpace(m.searchBar.Value())
		if term == "" {
			return m, nil
		}
		cmd := m.submit(term)
		m.setMode(ModeNormal)
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		return m, m.setMode(ModeNormal)

	case msg.Type == tea.KeyTab:
		return m, m.setMode(ModeRecent)
	}

	_, cmd := m.searchBar.Update(msg)
	return m, cmd
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelSearch()
		return m, tea.Quit
	case key.Matches(msg, m.keys.FocusSearch):
		return m, m.setMode(ModeInsert)
	case key.Matches(msg, m.keys.FocusRecent):
		return m, m.setMode(ModeRecent)
	case key.Matches(msg, m.keys.Down):
		m.results.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.results.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.results.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.results.HalfPageUp()
	}
	return m, nil
}

func (m Model) handleRecentMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelSearch()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.FocusRecent):
		return m, m.setMode(ModeNormal)
	case key.Matches(msg, m.keys.FocusSearch):
		return m, m.setMode(ModeInsert)
	case key.Matches(msg, m.keys.Down):
		m.recentPanel.CursorDown()
	case key.Matches(msg, m.keys.Up):
		m.recentPanel.CursorUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.recentPanel.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.recentPanel.GotoBottom()
	case key.Matches(msg, m.keys.Submit):
		sel, ok := m.recentPanel.Selected()
		if !ok {
			return m, nil
		}
		m.searchBar.SetValue(sel.Text)
		cmd := m.submit(sel.Text)
		m.setMode(ModeNormal)
		return m, cmd
	}
	return m, nil
}

// submit records term as the most recent search, re-renders the recent
// list and starts the search itself.
func (m *Model) submit(term string) tea.Cmd {
	terms := m.recents.Add(term)
	m.setRecent(terms)
	m.logger.Debug("search submitted",
		zap.String("term", term),
		zap.String("type", string(search.DetectTermType(term))),
		zap.Int("recent", len(terms)),
	)
	return m.runSearch(term)
}

func (m *Model) runSearch(term string) tea.Cmd {
	m.cancelSearch()
	m.seq++
	m.query = term
	m.statusBar.SetQuery(term)
	m.statusBar.SetMessage("")

	seq := m.seq
	if cached, ok := m.resultCache.Get(term); ok {
		return func() tea.Msg {
			return searchDoneMsg{seq: seq, term: term, results: cached}
		}
	}

	m.statusBar.SetLoading(true)

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	m.cancel = cancel
	searcher := m.searcher

	return func() tea.Msg {
		defer cancel()
		results, err := searcher.Search(ctx, term)
		return searchDoneMsg{seq: seq, term: term, results: results, err: err}
	}
}

func (m *Model) cancelSearch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	m.cancel = nil
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.logger.Warn("search failed", zap.String("term", msg.term), zap.Error(msg.err))
		m.statusBar.SetError(fmt.Sprintf("Search failed: %v", msg.err))
		return m, nil
	}

	m.resultCache.Add(msg.term, msg.results)
	m.results.SetContent(render.Results(msg.results, msg.term, m.results.Width()))
	m.statusBar.SetMessage(fmt.Sprintf("%d results for %s", len(msg.results), msg.term))
	return m, nil
}

func (m Model) clearRecent() (tea.Model, tea.Cmd) {
	m.recents.Clear()
	m.setRecent(m.recents.Load())
	m.statusBar.SetMessage("Recent searches cleared")
	return m, nil
}

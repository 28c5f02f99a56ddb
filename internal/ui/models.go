package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/config"
	"github.com/baitwatch/baitwatch/internal/database"
	"github.com/baitwatch/baitwatch/internal/feed"
	"github.com/baitwatch/baitwatch/internal/themes"
)

const globalHelp string = "h: help"

const appTitle = "🎣 Baitwatch"

// FeedController is the part of feed.Controller the UI drives.
type FeedController interface {
	State() feed.State
	SelectedSource() string
	EndReached() bool
	Refresh(ctx context.Context)
	SelectSource(ctx context.Context, source string)
	LoadMore(ctx context.Context)
}

// ArticleClient serves the detail view and the source picker.
type ArticleClient interface {
	FetchArticleByID(ctx context.Context, id string) (*api.Article, error)
	FetchSources(ctx context.Context) ([]string, error)
}

type ViewState int

const (
	FeedListView ViewState = iota
	ArticleView
	SourcePickerView
	LogView
	LogDetailView
	HelpView
	SettingsView
)

type Model struct {
	feed            FeedController
	client          ArticleClient
	queries         *database.Queries
	config          config.Config
	glamourRenderer *glamour.TermRenderer
	state           ViewState
	previousState   ViewState // Store previous state when entering help view

	feedState      feed.State
	selectedSource string
	endReached     bool
	loadingMore    bool
	readArticles   map[string]bool
	sources        []config.SourceEntry

	currentArticle    api.Article
	articleLoading    bool
	articleLines      []string
	links             []string
	articleViewScroll int

	logList    []database.LogMessage
	currentLog database.LogMessage

	cursor              int
	savedFeedCursor     int
	savedLogCursor      int
	savedSettingsCursor int
	sourceCursor        int
	helpViewScroll      int

	editingSetting   bool   // Text input for the selected setting
	selectingOption  bool   // Option list for the selected setting
	optionCursor     int    // Cursor in the option list
	settingInput     string // Current input value when editing
	showSettingsHelp bool

	width             int
	height            int
	err               error
	spinnerFrame      int
	spinnerRunning    bool
	statusMessage     string // Message to display above status bar
	statusMessageType string // "error" or "info"
	quitPressed       bool   // 'q' pressed once in the feed list
}

// FeedStateMsg carries a state published by the feed controller.
type FeedStateMsg struct {
	State feed.State
}

type LoadMoreDoneMsg struct{}

type ArticleLoadedMsg struct {
	ID      string
	Article *api.Article
	Err     error
}

type SourcesLoadedMsg struct {
	Sources []config.SourceEntry
}

type ReadArticlesLoadedMsg struct {
	IDs []string
}

type ArticleReadStatusMsg struct {
	ID   string
	Read bool
}

type LogListLoadedMsg struct {
	Logs []database.LogMessage
}

type ConfigSavedMsg struct{}

type SpinnerTickMsg struct{}

type ErrorMsg struct {
	Err error
}

func NewModel(ctrl FeedController, client ArticleClient, queries *database.Queries, cfg config.Config, sources []config.SourceEntry) Model {
	return Model{
		feed:            ctrl,
		client:          client,
		queries:         queries,
		config:          cfg,
		glamourRenderer: newRenderer(cfg.ThemeName, 80),
		state:           FeedListView,
		feedState:       ctrl.State(),
		selectedSource:  ctrl.SelectedSource(),
		readArticles:    make(map[string]bool),
		sources:         sources,
		spinnerRunning:  true, // Init starts the first tick
	}
}

func newRenderer(themeName string, wrap int) *glamour.TermRenderer {
	theme := themes.GetThemeByName(themeName)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Fallback to default renderer if creation fails
		renderer, _ = glamour.NewTermRenderer()
	}
	return renderer
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		refreshFeed(m.feed),
		loadReadArticles(m.queries),
		loadSources(m.client, m.sources),
		spinnerTick(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.glamourRenderer = newRenderer(m.config.ThemeName, m.wrapWidth())
		if m.state == ArticleView {
			m.buildArticleLines()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case FeedStateMsg:
		return m.applyFeedState(msg.State)

	case LoadMoreDoneMsg:
		m.loadingMore = false
		m.endReached = m.feed.EndReached()
		return m, nil

	case ArticleLoadedMsg:
		if msg.ID != m.currentArticle.ID {
			return m, nil
		}
		m.articleLoading = false
		if msg.Err != nil {
			m.statusMessage = "Showing list copy: " + msg.Err.Error()
			m.statusMessageType = "error"
		} else if msg.Article != nil {
			m.currentArticle = *msg.Article
		}
		if m.state == ArticleView {
			m.buildArticleLines()
		}
		return m, nil

	case SourcesLoadedMsg:
		m.sources = msg.Sources
		return m, nil

	case ReadArticlesLoadedMsg:
		for _, id := range msg.IDs {
			m.readArticles[id] = true
		}
		return m, nil

	case ArticleReadStatusMsg:
		if msg.Read {
			m.readArticles[msg.ID] = true
		} else {
			delete(m.readArticles, msg.ID)
		}
		return m, nil

	case LogListLoadedMsg:
		m.logList = msg.Logs
		if m.state == LogView {
			// Preserve cursor position when refreshing
			m.cursor = m.savedLogCursor
			if m.cursor >= len(m.logList) {
				m.cursor = max(0, len(m.logList)-1)
			}
			m.savedLogCursor = m.cursor
		}
		return m, nil

	case ConfigSavedMsg:
		m.statusMessage = "settings saved"
		m.statusMessageType = "info"
		return m, nil

	case SpinnerTickMsg:
		if m.feedState.IsLoading() || m.loadingMore || m.articleLoading {
			m.spinnerFrame++
			return m, spinnerTick()
		}
		m.spinnerRunning = false
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) applyFeedState(s feed.State) (tea.Model, tea.Cmd) {
	wasSuccess := m.feedState.IsSuccess()
	m.feedState = s
	m.endReached = m.feed.EndReached()
	m.selectedSource = m.feed.SelectedSource()

	switch {
	case s.IsLoading():
		m.savedFeedCursor = 0
		if m.state == FeedListView {
			m.cursor = 0
		}
		cmd := m.ensureSpinner()
		return m, cmd

	case s.IsSuccess():
		if !wasSuccess {
			m.savedFeedCursor = 0
		}
		rows := m.feedRowCount()
		if m.savedFeedCursor >= rows {
			m.savedFeedCursor = max(0, rows-1)
		}
		if m.state == FeedListView {
			if !wasSuccess {
				m.cursor = 0
			}
			if m.cursor >= rows {
				m.cursor = max(0, rows-1)
			}
		}

	case s.IsError():
		m.loadingMore = false
		if m.state == FeedListView {
			m.cursor = 0
		}
	}
	return m, nil
}

// ensureSpinner starts the spinner tick unless it is already running.
func (m *Model) ensureSpinner() tea.Cmd {
	if m.spinnerRunning {
		return nil
	}
	m.spinnerRunning = true
	return spinnerTick()
}

func (m Model) wrapWidth() int {
	if m.width > 0 && m.width-4 < 80 {
		return max(20, m.width-4)
	}
	return 80
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.err = nil
		}
		return m, nil
	}

	switch m.state {
	case FeedListView:
		return m.handleFeedListKeys(msg)
	case ArticleView:
		return m.handleArticleKeys(msg)
	case SourcePickerView:
		return m.handleSourcePickerKeys(msg)
	case LogView:
		return m.handleLogListKeys(msg)
	case LogDetailView:
		return m.handleLogDetailKeys(msg)
	case HelpView:
		return m.handleHelpViewKeys(msg)
	case SettingsView:
		return m.handleSettingsViewKeys(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit, esc to dismiss", m.err)
	}

	switch m.state {
	case FeedListView:
		return m.renderFeedList()
	case ArticleView:
		return m.renderArticle()
	case SourcePickerView:
		return m.renderSourcePicker()
	case LogView:
		return m.renderLogList()
	case LogDetailView:
		return m.renderLogDetail()
	case HelpView:
		return m.renderHelpView()
	case SettingsView:
		return m.renderSettingsView()
	}

	return "Loading..."
}

func (m Model) theme() *themes.Theme {
	return themes.GetThemeByName(m.config.ThemeName)
}

func (m Model) getTitleStyle() lipgloss.Style {
	theme := m.theme()
	return lipgloss.NewStyle().Bold(true).Background(lipgloss.Color(theme.TitleColor)).Foreground(lipgloss.Color(theme.TitleColorFg)).Width(m.width)
}

func (m Model) getSelectedStyle() lipgloss.Style {
	theme := m.theme()

	switch m.config.HighlightStyle {
	case "underline", "prefix-underline":
		return lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(theme.SelectedItemColor))
	case "prefix":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SelectedItemColor))
	default:
		return lipgloss.NewStyle().Background(lipgloss.Color(theme.SelectedItemColor)).Foreground(lipgloss.Color("229"))
	}
}

func (m Model) hasPrefixHighlight() bool {
	return m.config.HighlightStyle == "prefix" || m.config.HighlightStyle == "prefix-underline"
}

// applyHighlight applies the appropriate highlight style to a line
func (m Model) applyHighlight(line string, isSelected bool) string {
	if m.hasPrefixHighlight() {
		if isSelected {
			line = "> " + line
		} else {
			line = "  " + line
		}
	}

	if isSelected {
		return m.getSelectedStyle().Render(line)
	}
	return line
}

func (m Model) getHelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme().MutedColor))
}

func (m Model) getUnreadStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme().UnreadColor))
}

func (m Model) getErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme().ScoreHigh))
}

func (m Model) spinner() string {
	frames := themes.GetSpinnerFrames(m.config.SpinnerType)
	return frames[m.spinnerFrame%len(frames)]
}

// renderStatusBar renders the status message (if any) and the key help,
// padded so they sit on the last lines of the screen.
func (m Model) renderStatusBar(b *strings.Builder, usedLines int, scrollInfo string) {
	footerLines := 1
	if m.statusMessage != "" {
		footerLines++
	}
	padding := m.height - usedLines - footerLines
	if padding < 0 {
		padding = 0
	}
	b.WriteString(strings.Repeat("\n", padding))

	if m.statusMessage != "" {
		style := m.getHelpStyle()
		if m.statusMessageType == "error" {
			style = m.getErrorStyle()
		}
		b.WriteString(style.Render(m.statusMessage))
		b.WriteString("\n")
	}

	if scrollInfo != "" {
		b.WriteString(m.getHelpStyle().Render(scrollInfo))
		b.WriteString("  ")
	}
	b.WriteString(m.getHelpStyle().Render(statusBarText(m.state)))
}

// viewport returns the [start, end) window of a list of n rows that keeps
// cursor visible within height rows.
func viewport(n, cursor, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := max(0, cursor-height/2)
	end := min(n, start+height)
	if end-start < height {
		start = max(0, end-height)
	}
	return start, end
}

func halfPage(height int) int {
	if height/2 < 1 {
		return 5
	}
	return height / 2
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if lipgloss.Width(current)+1+lipgloss.Width(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// parsePublished parses the loosely formatted publishedAt values the backend emits.
func parsePublished(s *string) (time.Time, bool) {
	raw := strings.TrimSpace(api.Str(s))
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sourceLabel(source string) string {
	if source == feed.AllSources {
		return "all"
	}
	return source
}

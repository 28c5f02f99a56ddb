package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/baitwatch/baitwatch/internal/feed"
)

// sourceOptions returns the picker rows: all sources first, then each configured source.
func (m Model) sourceOptions() []string {
	options := []string{feed.AllSources}
	for _, s := range m.sources {
		options = append(options, s.Name)
	}
	return options
}

func (m Model) sourceIndex(source string) int {
	for i, option := range m.sourceOptions() {
		if option == source {
			return i
		}
	}
	return 0
}

func (m Model) sourceDisplayName(source string) string {
	if source == feed.AllSources {
		return "All sources"
	}
	for _, s := range m.sources {
		if s.Name == source && s.Label != "" {
			return s.Label + " (" + s.Name + ")"
		}
	}
	return source
}

func (m Model) handleSourcePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.sourceOptions()

	switch msg.String() {
	case "h", "?":
		m.previousState = m.state
		m.state = HelpView
		return m, nil

	case "q", "esc", "ctrl+c":
		m.state = FeedListView
		m.cursor = m.savedFeedCursor
		return m, nil

	case "j", "down":
		m.sourceCursor = (m.sourceCursor + 1) % len(options)

	case "k", "up":
		m.sourceCursor = (m.sourceCursor - 1 + len(options)) % len(options)

	case "enter":
		source := options[m.sourceCursor]
		m.state = FeedListView
		m.selectedSource = source
		m.cursor = 0
		m.savedFeedCursor = 0
		return m, selectSource(m.feed, source)
	}

	return m, nil
}

func (m Model) renderSourcePicker() string {
	var b strings.Builder
	b.WriteString(m.getTitleStyle().Render(appTitle + " - Choose Source"))
	b.WriteString("\n\n")

	options := m.sourceOptions()
	availableHeight := max(3, m.height-4)
	start, end := viewport(len(options), m.sourceCursor, availableHeight)
	for i := start; i < end; i++ {
		marker := "  "
		if options[i] == m.selectedSource {
			marker = "✓ "
		}
		b.WriteString(m.applyHighlight(marker+m.sourceDisplayName(options[i]), i == m.sourceCursor))
		b.WriteString("\n")
	}

	m.renderStatusBar(&b, 2+(end-start), "")
	return b.String()
}

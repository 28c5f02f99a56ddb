package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/baitwatch/baitwatch/internal/api"
)

func (m Model) handleHelpViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "h", "?", "ctrl+c":
		m.state = m.previousState
		m.helpViewScroll = 0
		if m.state == FeedListView {
			m.cursor = m.savedFeedCursor
		}
		return m, nil

	case "j", "down":
		m.helpViewScroll++

	case "k", "up":
		if m.helpViewScroll > 0 {
			m.helpViewScroll--
		}

	case "ctrl+d":
		m.helpViewScroll += halfPage(m.height)

	case "ctrl+u":
		m.helpViewScroll = max(0, m.helpViewScroll-halfPage(m.height))
	}

	return m, nil
}

func writeHelpSection(b *strings.Builder, title string, bindings []KeyBinding) {
	b.WriteString(title + "\n")
	for _, binding := range bindings {
		fmt.Fprintf(b, "  %-15s %s\n", binding.Key, binding.Description)
	}
	b.WriteString("\n")
}

func (m Model) helpContentLines() []string {
	var content strings.Builder

	writeHelpSection(&content, "Global", GlobalKeys)
	writeHelpSection(&content, "Feed List View", FeedListViewKeys.Help)
	writeHelpSection(&content, "Article View", ArticleViewKeys.Help)
	writeHelpSection(&content, "Source Picker", SourcePickerViewKeys.Help)
	writeHelpSection(&content, "Settings View", SettingsViewKeys.Help)
	writeHelpSection(&content, "Log View", LogViewKeys.Help)

	content.WriteString("Clickbait levels\n")
	fmt.Fprintf(&content, "  %-15s %s\n", "["+string(api.LevelHigh)+"]", "score 70 and above")
	fmt.Fprintf(&content, "  %-15s %s\n", "["+string(api.LevelMedium)+"]", "score 40 to 69")
	fmt.Fprintf(&content, "  %-15s %s\n", "["+string(api.LevelLow)+"]", "score below 40")
	fmt.Fprintf(&content, "  %-15s %s\n", "["+string(api.LevelUnknown)+"]", "not analyzed yet")
	fmt.Fprintf(&content, "  %-15s %s\n", unreadMarker, "unread article")

	return strings.Split(content.String(), "\n")
}

func (m Model) renderHelpView() string {
	var b strings.Builder
	b.WriteString(m.getTitleStyle().Render(appTitle + " - Help"))
	b.WriteString("\n\n")

	lines := m.helpContentLines()
	availableHeight := max(1, m.height-3)
	start := min(m.helpViewScroll, max(0, len(lines)-availableHeight))
	end := min(start+availableHeight, len(lines))

	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	padding := max(0, m.height-(end-start)-3)
	b.WriteString(strings.Repeat("\n", padding))
	b.WriteString(m.getHelpStyle().Render("q/esc: back | j/k: scroll"))
	return b.String()
}

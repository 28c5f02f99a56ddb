package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleLogListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		if len(m.logList) > 0 {
			m.cursor = (m.cursor + 1) % len(m.logList)
			m.savedLogCursor = m.cursor
		}

	case "k", "up":
		if len(m.logList) > 0 {
			m.cursor = (m.cursor - 1 + len(m.logList)) % len(m.logList)
			m.savedLogCursor = m.cursor
		}

	case "ctrl+d":
		if len(m.logList) > 0 {
			m.cursor = min(m.cursor+halfPage(m.height), len(m.logList)-1)
			m.savedLogCursor = m.cursor
		}

	case "ctrl+u":
		if len(m.logList) > 0 {
			m.cursor = max(m.cursor-halfPage(m.height), 0)
			m.savedLogCursor = m.cursor
		}

	case "enter":
		if m.cursor < len(m.logList) {
			m.currentLog = m.logList[m.cursor]
			m.state = LogDetailView
		}

	case "c":
		m.cursor = 0
		m.savedLogCursor = 0
		return m, clearAllLogMessages(m.queries)
	}

	return m, nil
}

func (m Model) handleLogDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "?":
		m.previousState = m.state
		m.state = HelpView
		return m, nil

	case "q", "esc", "ctrl+c":
		m.state = LogView
		m.cursor = m.savedLogCursor
		return m, nil
	}

	return m, nil
}

func (m Model) renderLogList() string {
	var b strings.Builder
	b.WriteString(m.getTitleStyle().Render(appTitle + " - Log Messages"))
	b.WriteString("\n\n")

	if len(m.logList) == 0 {
		b.WriteString("No log messages found.")
		m.renderStatusBar(&b, 3, "")
		return b.String()
	}

	availableHeight := max(3, m.height-4)
	start, end := viewport(len(m.logList), m.cursor, availableHeight)

	for i := start; i < end; i++ {
		log := m.logList[i]

		timestampStr := strings.Repeat(" ", 19)
		if log.Timestamp.Valid {
			timestampStr = log.Timestamp.Time.Format("2006-01-02 15:04:05")
		}

		line := fmt.Sprintf("%s  %-5s  %s", timestampStr, log.Level, log.Message)
		b.WriteString(m.applyHighlight(line, i == m.cursor))
		b.WriteString("\n")
	}

	scrollInfo := ""
	if len(m.logList) > availableHeight {
		scrollInfo = fmt.Sprintf("(%d-%d of %d)", start+1, end, len(m.logList))
	}
	m.renderStatusBar(&b, 2+(end-start), scrollInfo)
	return b.String()
}

func (m Model) renderLogDetail() string {
	var b strings.Builder
	b.WriteString(m.getTitleStyle().Render(appTitle + " - Log Message Details"))
	b.WriteString("\n\n")

	if m.currentLog.Timestamp.Valid {
		fmt.Fprintf(&b, "Time: %s\n", m.currentLog.Timestamp.Time.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "Level: %s\n", m.currentLog.Level)
	fmt.Fprintf(&b, "Message: %s\n\n", m.currentLog.Message)

	if m.currentLog.Attributes.Valid && m.currentLog.Attributes.String != "" {
		b.WriteString("Attributes:\n")

		var attrs map[string]any
		if err := json.Unmarshal([]byte(m.currentLog.Attributes.String), &attrs); err == nil {
			keys := make([]string, 0, len(attrs))
			for key := range attrs {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				availableWidth := max(20, m.width-6-len(key))
				wrappedLines := wrapText(fmt.Sprintf("%v", attrs[key]), availableWidth)
				fmt.Fprintf(&b, "  %s: %s\n", key, wrappedLines[0])
				indent := strings.Repeat(" ", len(key)+4)
				for _, line := range wrappedLines[1:] {
					b.WriteString(indent + line + "\n")
				}
			}
		} else {
			for _, line := range wrapText(m.currentLog.Attributes.String, m.width-4) {
				b.WriteString("  " + line + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.getHelpStyle().Render(globalHelp))
	return b.String()
}

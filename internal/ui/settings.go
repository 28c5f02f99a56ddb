package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/baitwatch/baitwatch/internal/config"
	"github.com/baitwatch/baitwatch/internal/themes"
)

// settingItem describes one editable row of the settings view. Items with
// options are chosen from a list; the rest take free text.
type settingItem struct {
	label   string
	help    string
	restart bool // takes effect on the next start
	value   func(m Model) string
	options func(m Model) []string
	apply   func(cfg *config.Config, value string) error
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var settingItems = []settingItem{
	{
		label:   "API base URL",
		help:    "Address of the clickbait verifier backend",
		restart: true,
		value:   func(m Model) string { return m.config.APIBaseURL },
		apply: func(cfg *config.Config, value string) error {
			value = strings.TrimSpace(value)
			if !config.ValidateAPIBaseURL(value) {
				return fmt.Errorf("invalid API base URL %q", value)
			}
			cfg.APIBaseURL = value
			return nil
		},
	},
	{
		label:   "Page size",
		help:    fmt.Sprintf("Articles requested per page (%d-%d)", config.MinPageSize, config.MaxPageSize),
		restart: true,
		value:   func(m Model) string { return strconv.Itoa(m.config.PageSize) },
		apply: func(cfg *config.Config, value string) error {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < config.MinPageSize || n > config.MaxPageSize {
				return fmt.Errorf("page size must be between %d and %d", config.MinPageSize, config.MaxPageSize)
			}
			cfg.PageSize = n
			return nil
		},
	},
	{
		label:   "Default source",
		help:    "Source selected when the app starts",
		restart: true,
		value:   func(m Model) string { return sourceLabel(m.config.DefaultSource) },
		options: func(m Model) []string {
			options := []string{"all"}
			for _, s := range m.sources {
				options = append(options, s.Name)
			}
			return options
		},
		apply: func(cfg *config.Config, value string) error {
			if value == "all" {
				value = ""
			}
			cfg.DefaultSource = value
			return nil
		},
	},
	{
		label:   "Show scores",
		help:    "Show the numeric clickbait score next to the level",
		value:   func(m Model) string { return yesNo(m.config.ShowScores) },
		options: func(Model) []string { return []string{"yes", "no"} },
		apply: func(cfg *config.Config, value string) error {
			cfg.ShowScores = value == "yes"
			return nil
		},
	},
	{
		label:   "Theme",
		help:    "Color scheme for the UI",
		value:   func(m Model) string { return m.config.ThemeName },
		options: func(Model) []string { return themes.GetThemeNames() },
		apply: func(cfg *config.Config, value string) error {
			cfg.ThemeName = value
			return nil
		},
	},
	{
		label:   "Highlight style",
		help:    "How the selected row is highlighted",
		value:   func(m Model) string { return m.config.HighlightStyle },
		options: func(Model) []string { return themes.GetHighlightStyles() },
		apply: func(cfg *config.Config, value string) error {
			cfg.HighlightStyle = value
			return nil
		},
	},
	{
		label:   "Spinner",
		help:    "Animation style for the loading spinner",
		value:   func(m Model) string { return m.config.SpinnerType },
		options: func(Model) []string { return themes.GetSpinnerTypes() },
		apply: func(cfg *config.Config, value string) error {
			cfg.SpinnerType = value
			return nil
		},
	},
}

// applySetting validates value for the selected item and persists the new config.
func (m Model) applySetting(item settingItem, value string) (tea.Model, tea.Cmd) {
	cfg := m.config
	if err := item.apply(&cfg, value); err != nil {
		m.statusMessage = err.Error()
		m.statusMessageType = "error"
		return m, nil
	}

	themeChanged := cfg.ThemeName != m.config.ThemeName
	m.config = cfg
	if themeChanged {
		m.glamourRenderer = newRenderer(m.config.ThemeName, m.wrapWidth())
	}
	return m, saveConfig(m.queries, m.config)
}

func (m Model) handleSettingsViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := settingItems[m.cursor]

	if m.selectingOption {
		options := item.options(m)
		switch msg.String() {
		case "esc":
			m.selectingOption = false
		case "j", "down":
			if m.optionCursor < len(options)-1 {
				m.optionCursor++
			}
		case "k", "up":
			if m.optionCursor > 0 {
				m.optionCursor--
			}
		case "enter":
			m.selectingOption = false
			return m.applySetting(item, options[m.optionCursor])
		}
		return m, nil
	}

	if m.editingSetting {
		switch msg.Type {
		case tea.KeyEsc:
			m.editingSetting = false
			m.settingInput = ""
		case tea.KeyEnter:
			m.editingSetting = false
			value := m.settingInput
			m.settingInput = ""
			return m.applySetting(item, value)
		case tea.KeyBackspace:
			if runes := []rune(m.settingInput); len(runes) > 0 {
				m.settingInput = string(runes[:len(runes)-1])
			}
		case tea.KeyRunes, tea.KeySpace:
			m.settingInput += string(msg.Runes)
		}
		return m, nil
	}

	m.statusMessage = ""
	m.statusMessageType = ""

	switch msg.String() {
	case "h":
		m.previousState = m.state
		m.state = HelpView
		return m, nil

	case "?":
		m.showSettingsHelp = !m.showSettingsHelp

	case "q", "esc", "ctrl+c":
		m.savedSettingsCursor = m.cursor
		m.state = FeedListView
		m.cursor = m.savedFeedCursor
		return m, nil

	case "j", "down":
		if m.cursor < len(settingItems)-1 {
			m.cursor++
			m.savedSettingsCursor = m.cursor
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.savedSettingsCursor = m.cursor
		}

	case "enter":
		if item.options != nil {
			m.selectingOption = true
			m.optionCursor = 0
			current := item.value(m)
			for i, option := range item.options(m) {
				if option == current {
					m.optionCursor = i
				}
			}
			return m, nil
		}
		m.editingSetting = true
		m.settingInput = item.value(m)
	}

	return m, nil
}

func (m Model) renderSettingsView() string {
	var b strings.Builder
	b.WriteString(m.getTitleStyle().Render(appTitle + " - Settings"))
	b.WriteString("\n\n")

	if m.selectingOption {
		item := settingItems[m.cursor]
		b.WriteString(item.label + ":\n")
		b.WriteString(m.getHelpStyle().Render(item.help))
		b.WriteString("\n\n")
		options := item.options(m)
		for i, option := range options {
			b.WriteString(m.applyHighlight(option, i == m.optionCursor))
			b.WriteString("\n")
		}
		padding := max(0, m.height-4-len(options)-1)
		b.WriteString(strings.Repeat("\n", padding))
		b.WriteString(m.getHelpStyle().Render("enter: select | esc: cancel"))
		return b.String()
	}

	labelWidth := 0
	for _, item := range settingItems {
		labelWidth = max(labelWidth, len(item.label))
	}

	lines := 2
	for i, item := range settingItems {
		value := item.value(m)
		if m.editingSetting && i == m.cursor {
			value = m.settingInput + "█"
		}
		line := fmt.Sprintf("%-*s  %s", labelWidth, item.label, value)
		b.WriteString(m.applyHighlight(line, i == m.cursor))
		b.WriteString("\n")
		lines++

		if m.showSettingsHelp {
			note := item.help
			if item.restart {
				note += " (applies on next start)"
			}
			b.WriteString(m.getHelpStyle().Render("    " + note))
			b.WriteString("\n")
			lines++
		}
	}

	if m.editingSetting {
		b.WriteString("\n")
		b.WriteString(m.getHelpStyle().Render("enter: save | esc: cancel"))
		lines += 2
	}

	m.renderStatusBar(&b, lines, "")
	return b.String()
}

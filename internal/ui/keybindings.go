package ui

import "strings"

// KeyBinding represents a single key binding with its description
type KeyBinding struct {
	Key         string
	Description string
}

// ViewKeyBindings holds the key bindings for a specific view
type ViewKeyBindings struct {
	Help      []KeyBinding // Keys listed in the help view
	StatusBar []KeyBinding // Keys to show in the status bar
}

// Global key bindings that work in all views
var GlobalKeys = []KeyBinding{
	{"h, ?", "help"},
	{"q", "quit / go back (2x in feed view)"},
	{"esc", "go back"},
	{"ctrl+c", "force quit"},
	{"j, down", "move down"},
	{"k, up", "move up"},
	{"enter", "select / open"},
	{"ctrl+d", "page down"},
	{"ctrl+u", "page up"},
}

var FeedListViewKeys = ViewKeyBindings{
	Help: []KeyBinding{
		{"r", "Reload the feed from the first page"},
		{"m", "Load more articles"},
		{"s", "Choose source"},
		{"o", "Open article link in browser"},
		{"u", "Toggle read status of article"},
		{"l", "View logs"},
		{"c", "View settings"},
	},
	StatusBar: []KeyBinding{
		{"s", "source"},
		{"r", "reload"},
		{"m", "more"},
	},
}

var ArticleViewKeys = ViewKeyBindings{
	Help: []KeyBinding{
		{"1-9", "Open numbered link in browser"},
		{"o", "Open article link in browser"},
		{"n", "Next article"},
		{"N", "Previous article"},
	},
	StatusBar: []KeyBinding{
		{"o", "open"},
		{"n/N", "next/prev"},
	},
}

var SourcePickerViewKeys = ViewKeyBindings{
	Help: []KeyBinding{
		{"enter", "Show articles from the selected source"},
	},
	StatusBar: []KeyBinding{
		{"enter", "select"},
		{"esc", "cancel"},
	},
}

var SettingsViewKeys = ViewKeyBindings{
	Help: []KeyBinding{
		{"enter", "Edit selected setting"},
		{"?", "Toggle settings help"},
	},
	StatusBar: []KeyBinding{
		{"?", "settings help"},
	},
}

var LogViewKeys = ViewKeyBindings{
	Help: []KeyBinding{
		{"c", "Clear all log messages"},
	},
	StatusBar: []KeyBinding{
		{"c", "clear"},
	},
}

var LogDetailViewKeys = ViewKeyBindings{}

var HelpViewKeys = ViewKeyBindings{}

// GetViewKeys returns the key bindings for a given view state
func GetViewKeys(state ViewState) ViewKeyBindings {
	switch state {
	case FeedListView:
		return FeedListViewKeys
	case ArticleView:
		return ArticleViewKeys
	case SourcePickerView:
		return SourcePickerViewKeys
	case SettingsView:
		return SettingsViewKeys
	case LogView:
		return LogViewKeys
	case LogDetailView:
		return LogDetailViewKeys
	case HelpView:
		return HelpViewKeys
	default:
		return ViewKeyBindings{}
	}
}

// FormatStatusBar creates a formatted status bar string from key bindings
func FormatStatusBar(bindings []KeyBinding) string {
	if len(bindings) == 0 {
		return ""
	}

	parts := make([]string, len(bindings))
	for i, binding := range bindings {
		parts[i] = binding.Key + ": " + binding.Description
	}
	return strings.Join(parts, " | ")
}

func statusBarText(state ViewState) string {
	viewHelp := FormatStatusBar(GetViewKeys(state).StatusBar)
	if viewHelp == "" {
		return globalHelp
	}
	return globalHelp + " | " + viewHelp
}

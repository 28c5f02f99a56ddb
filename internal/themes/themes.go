package themes

import "github.com/baitwatch/baitwatch/internal/api"

type Theme struct {
	Name              string
	GlamourStyle      string
	TitleColor        string
	TitleColorFg      string
	SelectedItemColor string
	MutedColor        string
	UnreadColor       string
	HighlightStyle    string // "background", "underline", "prefix", "prefix-underline"

	// Badge colours per clickbait level
	ScoreHigh    string
	ScoreMedium  string
	ScoreLow     string
	ScoreUnknown string
}

var AvailableThemes = []Theme{
	{
		Name:              "dark",
		GlamourStyle:      "dark",
		TitleColor:        "62",
		TitleColorFg:      "231",
		SelectedItemColor: "170",
		MutedColor:        "#555555",
		UnreadColor:       "86",
		HighlightStyle:    "prefix-underline",
		ScoreHigh:         "196",
		ScoreMedium:       "214",
		ScoreLow:          "42",
		ScoreUnknown:      "245",
	},
	{
		Name:              "light",
		GlamourStyle:      "light",
		TitleColor:        "12",
		TitleColorFg:      "0",
		SelectedItemColor: "75",
		MutedColor:        "#999999",
		UnreadColor:       "26",
		HighlightStyle:    "prefix-underline",
		ScoreHigh:         "160",
		ScoreMedium:       "130",
		ScoreLow:          "28",
		ScoreUnknown:      "243",
	},
	{
		Name:              "dracula",
		GlamourStyle:      "dracula",
		TitleColor:        "141",
		TitleColorFg:      "231",
		SelectedItemColor: "212",
		MutedColor:        "#6272a4",
		UnreadColor:       "117",
		HighlightStyle:    "prefix-underline",
		ScoreHigh:         "#ff5555",
		ScoreMedium:       "#ffb86c",
		ScoreLow:          "#50fa7b",
		ScoreUnknown:      "#6272a4",
	},
	{
		Name:              "ascii",
		GlamourStyle:      "ascii",
		TitleColor:        "7",
		TitleColorFg:      "0",
		SelectedItemColor: "7",
		MutedColor:        "#808080",
		UnreadColor:       "7",
		HighlightStyle:    "prefix",
		ScoreHigh:         "7",
		ScoreMedium:       "7",
		ScoreLow:          "7",
		ScoreUnknown:      "7",
	},
}

func GetThemeByName(name string) *Theme {
	for i := range AvailableThemes {
		if AvailableThemes[i].Name == name {
			return &AvailableThemes[i]
		}
	}
	// Return default dark theme if not found
	return &AvailableThemes[0]
}

// ScoreColor returns the badge colour for a clickbait level.
func (t *Theme) ScoreColor(level api.Level) string {
	switch level {
	case api.LevelHigh:
		return t.ScoreHigh
	case api.LevelMedium:
		return t.ScoreMedium
	case api.LevelLow:
		return t.ScoreLow
	default:
		return t.ScoreUnknown
	}
}

func GetThemeNames() []string {
	names := make([]string, len(AvailableThemes))
	for i, theme := range AvailableThemes {
		names[i] = theme.Name
	}
	return names
}

func GetHighlightStyles() []string {
	return []string{
		"background",
		"underline",
		"prefix",
		"prefix-underline",
	}
}

func GetSpinnerTypes() []string {
	return []string{
		"braille",
		"dots",
		"line",
		"circle",
	}
}

func GetSpinnerFrames(spinnerType string) []string {
	switch spinnerType {
	case "dots":
		return []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	case "line":
		return []string{"-", "\\", "|", "/"}
	case "circle":
		return []string{"◐", "◓", "◑", "◒"}
	default:
		return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
}

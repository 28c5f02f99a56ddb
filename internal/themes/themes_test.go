package themes

import (
	"testing"

	"github.com/baitwatch/baitwatch/internal/api"
)

func TestGetThemeByNameFallsBack(t *testing.T) {
	if got := GetThemeByName("dracula"); got.Name != "dracula" {
		t.Errorf("expected dracula, got %s", got.Name)
	}
	if got := GetThemeByName("nope"); got.Name != "dark" {
		t.Errorf("expected dark fallback, got %s", got.Name)
	}
}

func TestScoreColor(t *testing.T) {
	theme := GetThemeByName("dark")
	tests := map[api.Level]string{
		api.LevelHigh:    theme.ScoreHigh,
		api.LevelMedium:  theme.ScoreMedium,
		api.LevelLow:     theme.ScoreLow,
		api.LevelUnknown: theme.ScoreUnknown,
	}
	for level, want := range tests {
		if got := theme.ScoreColor(level); got != want {
			t.Errorf("ScoreColor(%s) = %s, want %s", level, got, want)
		}
	}
}

func TestSpinnerFramesKnownTypes(t *testing.T) {
	for _, name := range GetSpinnerTypes() {
		if len(GetSpinnerFrames(name)) == 0 {
			t.Errorf("spinner %q has no frames", name)
		}
	}
	if len(GetSpinnerFrames("unknown")) == 0 {
		t.Error("unknown spinner type should fall back to default frames")
	}
}

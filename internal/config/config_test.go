package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/baitwatch/baitwatch/internal/database"
)

func openTestQueries(t *testing.T) *database.Queries {
	t.Helper()
	schema, err := os.ReadFile(filepath.Join("..", "..", "sql", "schema.sql"))
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	db, queries, err := database.OpenDB(filepath.Join(t.TempDir(), "test.db"), string(schema))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return queries
}

func TestLoadConfigDefaults(t *testing.T) {
	queries := openTestQueries(t)

	cfg, err := LoadConfig(queries)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != GetDefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	queries := openTestQueries(t)

	want := Config{
		APIBaseURL:     "https://verifier.example.com",
		PageSize:       50,
		DefaultSource:  "onet",
		ShowScores:     false,
		ThemeName:      "light",
		HighlightStyle: "arrow",
		SpinnerType:    "dots",
	}
	if err := SaveConfig(queries, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(queries)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Config
		wantSize int
		wantURL  string
	}{
		{"zero page size", Config{PageSize: 0, APIBaseURL: "http://a"}, MinPageSize, "http://a"},
		{"negative page size", Config{PageSize: -5, APIBaseURL: "http://a"}, MinPageSize, "http://a"},
		{"too large", Config{PageSize: 500, APIBaseURL: "http://a"}, MaxPageSize, "http://a"},
		{"trailing slash", Config{PageSize: 20, APIBaseURL: " http://a/ "}, 20, "http://a"},
		{"empty url", Config{PageSize: 20}, 20, GetDefaultConfig().APIBaseURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Normalize()
			if cfg.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", cfg.PageSize, tt.wantSize)
			}
			if cfg.APIBaseURL != tt.wantURL {
				t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, tt.wantURL)
			}
		})
	}
}

func TestResolveAPIBaseURL(t *testing.T) {
	cfg := GetDefaultConfig()

	t.Setenv(EnvAPIBaseURL, "")
	if got := cfg.ResolveAPIBaseURL(""); got != cfg.APIBaseURL {
		t.Errorf("expected stored URL, got %q", got)
	}

	t.Setenv(EnvAPIBaseURL, "http://env:9000")
	if got := cfg.ResolveAPIBaseURL(""); got != "http://env:9000" {
		t.Errorf("expected env URL, got %q", got)
	}
	if got := cfg.ResolveAPIBaseURL("http://flag:1"); got != "http://flag:1" {
		t.Errorf("expected flag URL to win, got %q", got)
	}
}

func TestValidateAPIBaseURL(t *testing.T) {
	tests := map[string]bool{
		"http://localhost:8001": true,
		"https://example.com":   true,
		"ftp://example.com":     false,
		"localhost:8001":        false,
		"":                      false,
		"http://":               false,
	}
	for raw, want := range tests {
		if got := ValidateAPIBaseURL(raw); got != want {
			t.Errorf("ValidateAPIBaseURL(%q) = %v, want %v", raw, got, want)
		}
	}
}

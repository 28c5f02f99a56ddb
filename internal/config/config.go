package config

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/baitwatch/baitwatch/internal/database"
)

// EnvAPIBaseURL overrides the stored API base URL for one run.
const EnvAPIBaseURL = "BAITWATCH_API"

const (
	MinPageSize = 1
	MaxPageSize = 200 // the backend rejects larger limits
)

type Config struct {
	APIBaseURL     string
	PageSize       int
	DefaultSource  string // source selected at startup; empty means all
	ShowScores     bool   // show numeric scores next to the level badge
	ThemeName      string
	HighlightStyle string
	SpinnerType    string
}

// Setting keys
const (
	KeyAPIBaseURL     = "api_base_url"
	KeyPageSize       = "page_size"
	KeyDefaultSource  = "default_source"
	KeyShowScores     = "show_scores"
	KeyThemeName      = "theme_name"
	KeyHighlightStyle = "highlight_style"
	KeySpinnerType    = "spinner_type"
)

func GetDefaultConfig() Config {
	return Config{
		APIBaseURL:     "http://localhost:8001",
		PageSize:       20,
		DefaultSource:  "",
		ShowScores:     true,
		ThemeName:      "dark",
		HighlightStyle: "prefix-underline",
		SpinnerType:    "braille",
	}
}

func LoadConfig(queries *database.Queries) (Config, error) {
	config := GetDefaultConfig()
	ctx := context.Background()

	if val, err := getSetting(ctx, queries, KeyAPIBaseURL); err == nil && val != "" {
		config.APIBaseURL = val
	}

	if val, err := getSetting(ctx, queries, KeyPageSize); err == nil {
		if intVal, err := strconv.Atoi(val); err == nil {
			config.PageSize = intVal
		}
	}

	if val, err := getSetting(ctx, queries, KeyDefaultSource); err == nil {
		config.DefaultSource = val
	}

	if val, err := getSetting(ctx, queries, KeyShowScores); err == nil {
		config.ShowScores = parseBool(val)
	}

	if val, err := getSetting(ctx, queries, KeyThemeName); err == nil {
		config.ThemeName = val
	}

	if val, err := getSetting(ctx, queries, KeyHighlightStyle); err == nil {
		config.HighlightStyle = val
	}

	if val, err := getSetting(ctx, queries, KeySpinnerType); err == nil {
		config.SpinnerType = val
	}

	config.Normalize()
	return config, nil
}

// Normalize clamps values into their valid ranges.
func (c *Config) Normalize() {
	if c.PageSize < MinPageSize {
		c.PageSize = MinPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = GetDefaultConfig().APIBaseURL
	}
}

// ResolveAPIBaseURL picks the base URL for this run: flag, then environment, then stored setting.
func (c Config) ResolveAPIBaseURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvAPIBaseURL); env != "" {
		return env
	}
	return c.APIBaseURL
}

// ValidateAPIBaseURL reports whether raw is an absolute http(s) URL.
func ValidateAPIBaseURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func SaveConfig(queries *database.Queries, config Config) error {
	ctx := context.Background()
	config.Normalize()

	settings := []struct{ key, value string }{
		{KeyAPIBaseURL, config.APIBaseURL},
		{KeyPageSize, strconv.Itoa(config.PageSize)},
		{KeyDefaultSource, config.DefaultSource},
		{KeyShowScores, formatBool(config.ShowScores)},
		{KeyThemeName, config.ThemeName},
		{KeyHighlightStyle, config.HighlightStyle},
		{KeySpinnerType, config.SpinnerType},
	}
	for _, s := range settings {
		if err := setSetting(ctx, queries, s.key, s.value); err != nil {
			return err
		}
	}

	return nil
}

func parseBool(val string) bool {
	return val == "true" || val == "yes"
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func getSetting(ctx context.Context, queries *database.Queries, key string) (string, error) {
	setting, err := queries.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func setSetting(ctx context.Context, queries *database.Queries, key, value string) error {
	return queries.SetSetting(ctx, database.SetSettingParams{
		Key:   key,
		Value: value,
	})
}

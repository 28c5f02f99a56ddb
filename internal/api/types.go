package api

// Article is a single feed entry as served by the backend.
// Optional fields are nil when absent or null on the wire.
type Article struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt *string   `json:"publishedAt,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Analysis    *Analysis `json:"analysis,omitempty"`
}

// Analysis is the backend's clickbait classification of an article.
type Analysis struct {
	ClickbaitScore         *float64 `json:"clickbaitScore,omitempty"`
	HasClickbait           *bool    `json:"hasClickbait,omitempty"`
	Reasoning              *string  `json:"reasoning,omitempty"`
	Summary                *string  `json:"summary,omitempty"`
	EmotionalTone          *string  `json:"emotionalTone,omitempty"`
	Sensationalism         *string  `json:"sensationalism,omitempty"`
	ManipulationTechniques []string `json:"manipulationTechniques,omitempty"`
	FactualBasis           *string  `json:"factualBasis,omitempty"`
	SuggestedTitle         *string  `json:"suggestedTitle,omitempty"`
	EditorNotes            *string  `json:"editorNotes,omitempty"`
}

// FeedPage is the result of one list request.
type FeedPage struct {
	Articles []Article `json:"articles"`
	Total    int       `json:"total"`
	Source   *string   `json:"source,omitempty"`
}

// SourceList is returned by /api/sources.
type SourceList struct {
	Sources []string `json:"sources"`
}

// Health is returned by the backend root endpoint.
type Health struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints,omitempty"`
}

// Level buckets a clickbait score the way the feed cards label it.
type Level string

const (
	LevelUnknown Level = "N/A"
	LevelLow     Level = "Low"
	LevelMedium  Level = "Medium"
	LevelHigh    Level = "High"
)

// ScoreLevel returns the level for the article's score, LevelUnknown when unanalyzed.
func (a Article) ScoreLevel() Level {
	if a.Analysis == nil || a.Analysis.ClickbaitScore == nil {
		return LevelUnknown
	}
	score := *a.Analysis.ClickbaitScore
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// IsClickbait reports whether the backend flagged the article.
func (a Article) IsClickbait() bool {
	return a.Analysis != nil && a.Analysis.HasClickbait != nil && *a.Analysis.HasClickbait
}

// Str dereferences an optional string, returning "" for nil.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package content

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestToMarkdown(t *testing.T) {
	got := ToMarkdown("<p>Pierwszy <strong>akapit</strong></p>\n\n\n<p>Drugi</p>")
	if !strings.Contains(got, "**akapit**") {
		t.Errorf("Expected bold markdown, got %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("Expected blank lines collapsed, got %q", got)
	}
	if ToMarkdown("") != "" {
		t.Error("Expected empty output for empty input")
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tags stripped", "<p>Hello <b>world</b></p>", "Hello world"},
		{"script dropped", "<script>alert(1)</script>Text", "Text"},
		{"entities decoded", "Tom &amp; Jerry", "Tom & Jerry"},
		{"whitespace collapsed", "a\n\n  b\tc", "a b c"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateUsesDisplayWidth(t *testing.T) {
	title := "Zażółć gęślą jaźń – szokujące odkrycie naukowców"
	got := Truncate(title, 20)
	if w := runewidth.StringWidth(got); w > 20 {
		t.Errorf("Truncate width = %d, want <= 20 (%q)", w, got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis, got %q", got)
	}
	if Truncate("short", 20) != "short" {
		t.Error("Expected short strings unchanged")
	}
	if Truncate("anything", 0) != "" {
		t.Error("Expected empty string for zero width")
	}
}

func TestPadRight(t *testing.T) {
	got := PadRight("abc", 6)
	if got != "abc   " {
		t.Errorf("PadRight = %q", got)
	}
}

func TestPreview(t *testing.T) {
	got := Preview("<p>Naukowcy <em>nie wierzyli</em> własnym oczom!</p>", 15)
	if strings.Contains(got, "<") || runewidth.StringWidth(got) > 15 {
		t.Errorf("Unexpected preview %q", got)
	}
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected []string
	}{
		{
			name:     "simple anchor",
			html:     `<a href="https://example.com">link</a>`,
			expected: []string{"https://example.com"},
		},
		{
			name:     "markdown link",
			html:     `see [source](https://onet.pl/a) here`,
			expected: []string{"https://onet.pl/a"},
		},
		{
			name:     "duplicate links",
			html:     `<a href="https://example.com">link1</a> <a href="https://example.com">link2</a>`,
			expected: []string{"https://example.com"},
		},
		{
			name:     "plain text URL",
			html:     `Check out https://example.com. for more info`,
			expected: []string{"https://example.com"},
		},
		{
			name:     "relative links ignored",
			html:     `<a href="/local">x</a>`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := ExtractLinks(tt.html)
			if len(links) != len(tt.expected) {
				t.Fatalf("Expected %d links, got %d (%v)", len(tt.expected), len(links), links)
			}
			for i, expected := range tt.expected {
				if links[i] != expected {
					t.Errorf("Link %d: expected %s, got %s", i, expected, links[i])
				}
			}
		})
	}
}

func TestPlainTextSeparatesBlocks(t *testing.T) {
	if got := PlainText("<p>one</p><p>two</p>line<br/>break"); got != "one two line break" {
		t.Errorf("PlainText = %q", got)
	}
}

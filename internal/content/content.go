// Package content turns backend article bodies, which may be HTML or plain
// text, into markdown for the detail view and short plain-text previews for
// the list.
package content

import (
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/baitwatch/baitwatch/internal/logging"
	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"
)

var (
	mdLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	hrefPattern   = regexp.MustCompile(`<a[^>]+href=["']([^"']+)["']`)
	spacePattern  = regexp.MustCompile(`\s+`)
	blockBreak    = regexp.MustCompile(`(?i)</(p|div|li|h[1-6]|blockquote)>|<br\s*/?>`)

	strictPolicy = bluemonday.StrictPolicy()
)

// ToMarkdown converts input to markdown with blank lines collapsed.
// Plain text passes through unchanged apart from the cleanup.
func ToMarkdown(input string) string {
	if input == "" {
		return ""
	}

	markdown, err := md.ConvertString(input)
	if err != nil {
		logging.Warn("Failed to convert HTML to markdown", "error", err)
		markdown = input
	}

	markdown = strings.TrimSpace(markdown)
	lines := strings.Split(markdown, "\n")
	var cleanLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanLines = append(cleanLines, line)
		}
	}

	return strings.Join(cleanLines, "\n\n")
}

// PlainText strips all markup and collapses whitespace.
func PlainText(input string) string {
	if input == "" {
		return ""
	}
	text := blockBreak.ReplaceAllString(input, " ")
	text = html.UnescapeString(strictPolicy.Sanitize(text))
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// Preview returns a single-line plain-text excerpt that fits in width cells.
func Preview(input string, width int) string {
	return Truncate(PlainText(input), width)
}

// Truncate shortens s to at most width display cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width display cells, truncating if needed.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// ExtractLinks returns the unique http(s) links in content, in order of appearance.
func ExtractLinks(content string) []string {
	var links []string
	seen := make(map[string]bool)
	add := func(link string) {
		if (strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")) && !seen[link] {
			links = append(links, link)
			seen[link] = true
		}
	}

	for _, match := range mdLinkPattern.FindAllStringSubmatch(content, -1) {
		add(match[2])
	}

	for _, match := range hrefPattern.FindAllStringSubmatch(content, -1) {
		add(match[1])
	}

	if strings.Contains(content, "http") {
		for _, word := range strings.Fields(content) {
			if strings.HasPrefix(word, "http://") || strings.HasPrefix(word, "https://") {
				add(strings.TrimRight(word, ".,!?;)"))
			}
		}
	}

	return links
}

package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/content"
)

// articleMarkdown renders an article and its analysis as markdown.
func articleMarkdown(a api.Article) string {
	var b strings.Builder

	if body := content.ToMarkdown(api.Str(a.Content)); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	} else {
		b.WriteString("_No content._\n\n")
	}

	b.WriteString("## Clickbait analysis\n\n")

	analysis := a.Analysis
	if analysis == nil {
		b.WriteString("_Not analyzed yet._\n")
		return b.String()
	}

	level := a.ScoreLevel()
	if analysis.ClickbaitScore != nil {
		fmt.Fprintf(&b, "**Score:** %d/100 (%s)", int(math.Round(*analysis.ClickbaitScore)), level)
	} else {
		fmt.Fprintf(&b, "**Score:** %s", level)
	}
	if analysis.HasClickbait != nil {
		if *analysis.HasClickbait {
			b.WriteString(" · flagged as clickbait")
		} else {
			b.WriteString(" · not clickbait")
		}
	}
	b.WriteString("\n\n")

	writeField := func(label string, value *string) {
		if v := strings.TrimSpace(api.Str(value)); v != "" {
			fmt.Fprintf(&b, "**%s:** %s\n\n", label, v)
		}
	}
	writeSection := func(heading string, value *string) {
		if v := strings.TrimSpace(api.Str(value)); v != "" {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", heading, v)
		}
	}

	writeField("Suggested title", analysis.SuggestedTitle)
	writeField("Emotional tone", analysis.EmotionalTone)
	writeField("Sensationalism", analysis.Sensationalism)
	writeField("Factual basis", analysis.FactualBasis)
	writeSection("Summary", analysis.Summary)
	writeSection("Reasoning", analysis.Reasoning)

	if len(analysis.ManipulationTechniques) > 0 {
		b.WriteString("### Manipulation techniques\n\n")
		for _, t := range analysis.ManipulationTechniques {
			fmt.Fprintf(&b, "- %s\n", t)
		}
		b.WriteString("\n")
	}

	writeSection("Editor notes", analysis.EditorNotes)

	return b.String()
}

// articleLinks lists the article URL followed by links found in its content.
func articleLinks(a api.Article) []string {
	var links []string
	seen := make(map[string]bool)
	add := func(link string) {
		if link != "" && !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}
	add(a.URL)
	for _, link := range content.ExtractLinks(api.Str(a.Content)) {
		add(link)
	}
	return links
}

func (m *Model) buildArticleLines() {
	md := articleMarkdown(m.currentArticle)
	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}

	m.links = articleLinks(m.currentArticle)

	var b strings.Builder
	b.WriteString(rendered)
	if len(m.links) > 0 {
		b.WriteString("\n")
		b.WriteString(m.getHelpStyle().Render("Links:"))
		b.WriteString("\n")
		for i, link := range m.links {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, link)
		}
	}

	m.articleLines = strings.Split(b.String(), "\n")
}

func (m Model) articleBodyHeight() int {
	// title, meta line, badge line, blank line, status bar
	return max(1, m.height-5)
}

func (m Model) maxArticleScroll() int {
	return max(0, len(m.articleLines)-m.articleBodyHeight())
}

func (m Model) handleArticleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "o" {
		m.statusMessage = ""
		m.statusMessageType = ""
	}

	switch key {
	case "h", "?":
		m.previousState = m.state
		m.state = HelpView
		return m, nil

	case "q", "esc", "ctrl+c":
		m.state = FeedListView
		m.cursor = m.savedFeedCursor
		m.articleViewScroll = 0
		m.articleLoading = false
		return m, nil

	case "j", "down":
		if m.articleViewScroll < m.maxArticleScroll() {
			m.articleViewScroll++
		}

	case "k", "up":
		if m.articleViewScroll > 0 {
			m.articleViewScroll--
		}

	case "ctrl+d":
		m.articleViewScroll = min(m.articleViewScroll+halfPage(m.height), m.maxArticleScroll())

	case "ctrl+u":
		m.articleViewScroll = max(m.articleViewScroll-halfPage(m.height), 0)

	case "o":
		if m.currentArticle.URL != "" {
			return m, openLink(m.currentArticle.URL)
		}

	case "n":
		if articles := m.articles(); len(articles) > 0 {
			return m.openArticle((m.savedFeedCursor + 1) % len(articles))
		}

	case "N":
		if articles := m.articles(); len(articles) > 0 {
			return m.openArticle((m.savedFeedCursor - 1 + len(articles)) % len(articles))
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		linkNum := int(key[0] - '1')
		if linkNum < len(m.links) {
			return m, openLink(m.links[linkNum])
		}
	}

	return m, nil
}

func (m Model) renderArticle() string {
	a := m.currentArticle

	var b strings.Builder
	b.WriteString(m.getTitleStyle().Render(a.Title))
	b.WriteString("\n")

	meta := []string{a.Source}
	if t, ok := parsePublished(a.PublishedAt); ok {
		meta = append(meta, t.Format("2006-01-02 15:04"))
	} else if p := api.Str(a.PublishedAt); p != "" {
		meta = append(meta, p)
	}
	if a.URL != "" {
		meta = append(meta, a.URL)
	}
	b.WriteString(m.getHelpStyle().Render(content.Truncate(strings.Join(meta, " · "), max(10, m.width))))
	b.WriteString("\n")

	b.WriteString(m.renderBadge(a))
	if m.articleLoading {
		b.WriteString(" " + m.getHelpStyle().Render(m.spinner()+" fetching full article..."))
	}
	b.WriteString("\n\n")

	height := m.articleBodyHeight()
	start := min(m.articleViewScroll, max(0, len(m.articleLines)-1))
	end := min(start+height, len(m.articleLines))
	for _, line := range m.articleLines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	scrollInfo := ""
	if len(m.articleLines) > height {
		scrollInfo = fmt.Sprintf("(%d-%d of %d)", start+1, end, len(m.articleLines))
	}
	m.renderStatusBar(&b, 4+(end-start), scrollInfo)
	return b.String()
}

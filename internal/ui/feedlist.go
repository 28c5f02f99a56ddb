package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/content"
	"github.com/baitwatch/baitwatch/internal/feed"
	"github.com/baitwatch/baitwatch/internal/version"
)

const (
	badgeWidth    = 11
	unreadMarker  = "●"
	loadMoreLabel = "Load more articles"
)

// articles returns the list currently on screen; empty unless the feed is in Success.
func (m Model) articles() []api.Article {
	if !m.feedState.IsSuccess() {
		return nil
	}
	return m.feedState.Articles
}

// hasLoadMoreRow reports whether the list ends with a selectable "load more" row.
func (m Model) hasLoadMoreRow() bool {
	return len(m.articles()) > 0 && !m.endReached
}

func (m Model) feedRowCount() int {
	n := len(m.articles())
	if m.hasLoadMoreRow() {
		n++
	}
	return n
}

func (m Model) canLoadMore() bool {
	return m.feedState.IsSuccess() && !m.endReached && !m.loadingMore
}

func (m *Model) startLoadMore() tea.Cmd {
	if !m.canLoadMore() {
		return nil
	}
	m.loadingMore = true
	return tea.Batch(loadMore(m.feed), m.ensureSpinner())
}

// autoLoadMore pages in the next batch once the cursor reaches the last article.
func (m *Model) autoLoadMore() tea.Cmd {
	if n := len(m.articles()); n > 0 && m.cursor >= n-1 {
		return m.startLoadMore()
	}
	return nil
}

func (m Model) handleFeedListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" && key != "esc" {
		m.statusMessage = ""
		m.statusMessageType = ""
		m.quitPressed = false
	}

	rows := m.feedRowCount()
	articles := m.articles()

	switch key {
	case "ctrl+c":
		return m, tea.Quit

	case "q", "esc":
		if m.quitPressed {
			return m, tea.Quit
		}
		m.quitPressed = true
		m.statusMessage = "press q again to quit"
		m.statusMessageType = "info"
		return m, nil

	case "h", "?":
		m.previousState = m.state
		m.savedFeedCursor = m.cursor
		m.state = HelpView
		return m, nil

	case "j", "down":
		if rows > 0 {
			m.cursor = (m.cursor + 1) % rows
			cmd := m.autoLoadMore()
			return m, cmd
		}

	case "k", "up":
		if rows > 0 {
			m.cursor = (m.cursor - 1 + rows) % rows
		}

	case "ctrl+d":
		if rows > 0 {
			m.cursor = min(m.cursor+halfPage(m.height), rows-1)
			cmd := m.autoLoadMore()
			return m, cmd
		}

	case "ctrl+u":
		if rows > 0 {
			m.cursor = max(m.cursor-halfPage(m.height), 0)
		}

	case "enter":
		if m.cursor < len(articles) {
			return m.openArticle(m.cursor)
		}
		if m.hasLoadMoreRow() {
			cmd := m.startLoadMore()
			return m, cmd
		}

	case "m":
		cmd := m.startLoadMore()
		return m, cmd

	case "r":
		return m, refreshFeed(m.feed)

	case "s":
		m.savedFeedCursor = m.cursor
		m.state = SourcePickerView
		m.sourceCursor = m.sourceIndex(m.selectedSource)
		return m, nil

	case "o":
		if m.cursor < len(articles) && articles[m.cursor].URL != "" {
			return m, openLink(articles[m.cursor].URL)
		}

	case "u":
		if m.cursor < len(articles) {
			article := articles[m.cursor]
			if m.readArticles[article.ID] {
				return m, markArticleUnread(m.queries, article.ID)
			}
			return m, markArticleRead(m.queries, article)
		}

	case "l":
		m.savedFeedCursor = m.cursor
		m.state = LogView
		m.cursor = 0
		m.savedLogCursor = 0
		return m, loadLogList(m.queries)

	case "c":
		m.savedFeedCursor = m.cursor
		m.state = SettingsView
		m.cursor = m.savedSettingsCursor
		return m, nil
	}

	return m, nil
}

func (m Model) openArticle(index int) (tea.Model, tea.Cmd) {
	article := m.articles()[index]

	m.savedFeedCursor = index
	m.cursor = index
	m.currentArticle = article
	m.articleLoading = true
	m.articleViewScroll = 0
	m.state = ArticleView
	m.buildArticleLines()

	cmds := []tea.Cmd{fetchArticle(m.client, article.ID), m.ensureSpinner()}
	if !m.readArticles[article.ID] {
		cmds = append(cmds, markArticleRead(m.queries, article))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) feedTitle() string {
	return fmt.Sprintf("%s %s - Clickbait Verifier - source: %s", appTitle, version.GetVersion(), sourceLabel(m.selectedSource))
}

func (m Model) renderFeedList() string {
	var b strings.Builder
	b.WriteString(m.getTitleStyle().Render(m.feedTitle()))
	b.WriteString("\n\n")

	switch m.feedState.Status {
	case feed.StatusLoading:
		b.WriteString(m.spinner() + " Loading articles...")
		m.renderStatusBar(&b, 3, "")
		return b.String()

	case feed.StatusError:
		b.WriteString(m.getErrorStyle().Render("Could not load articles"))
		b.WriteString("\n")
		b.WriteString(m.feedState.Message)
		b.WriteString("\n\n")
		b.WriteString(m.getHelpStyle().Render("r: retry | s: change source"))
		m.renderStatusBar(&b, 6, "")
		return b.String()
	}

	articles := m.articles()
	if len(articles) == 0 {
		b.WriteString("No articles found.")
		m.renderStatusBar(&b, 3, "")
		return b.String()
	}

	// Title, blank line, preview line, status bar
	availableHeight := m.height - 4
	if m.statusMessage != "" {
		availableHeight--
	}
	if availableHeight < 3 {
		availableHeight = 3
	}

	rows := m.feedRowCount()
	start, end := viewport(rows, m.cursor, availableHeight)

	for i := start; i < end; i++ {
		if i == len(articles) {
			b.WriteString(m.applyHighlight(m.loadMoreRow(), i == m.cursor))
		} else {
			b.WriteString(m.renderArticleRow(articles[i], i == m.cursor))
		}
		b.WriteString("\n")
	}

	if m.endReached {
		b.WriteString(m.getHelpStyle().Render(fmt.Sprintf("  end of feed (%d articles)", len(articles))))
	} else if m.cursor < len(articles) {
		b.WriteString(m.getHelpStyle().Render(m.previewLine(articles[m.cursor])))
	}

	scrollInfo := ""
	if rows > availableHeight {
		scrollInfo = fmt.Sprintf("(%d-%d of %d)", start+1, end, rows)
	}
	m.renderStatusBar(&b, 2+(end-start)+1, scrollInfo)
	return b.String()
}

func (m Model) loadMoreRow() string {
	if m.loadingMore {
		return m.spinner() + " Loading more..."
	}
	return "↓ " + loadMoreLabel
}

// badgeText is the plain label for an article's clickbait level.
func (m Model) badgeText(a api.Article) string {
	level := a.ScoreLevel()
	if m.config.ShowScores && level != api.LevelUnknown {
		return fmt.Sprintf("[%s %d]", level, int(math.Round(*a.Analysis.ClickbaitScore)))
	}
	return "[" + string(level) + "]"
}

func (m Model) renderBadge(a api.Article) string {
	text := content.PadRight(m.badgeText(a), badgeWidth)
	color := m.theme().ScoreColor(a.ScoreLevel())
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

func (m Model) renderArticleRow(a api.Article, selected bool) string {
	date := "     "
	if t, ok := parsePublished(a.PublishedAt); ok {
		date = t.Format("01-02")
	}

	unread := !m.readArticles[a.ID]
	marker := " "
	if unread {
		marker = unreadMarker
	}

	suffix := ""
	if m.selectedSource == feed.AllSources && a.Source != "" {
		suffix = "  " + a.Source
	}

	prefixWidth := 0
	if m.hasPrefixHighlight() {
		prefixWidth = 2
	}
	titleWidth := m.width - prefixWidth - lipgloss.Width(date) - badgeWidth - lipgloss.Width(suffix) - 4
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := content.Truncate(a.Title, titleWidth)

	if selected {
		line := date + " " + marker + " " + content.PadRight(m.badgeText(a), badgeWidth) + " " + title + suffix
		return m.applyHighlight(line, true)
	}

	if unread {
		marker = m.getUnreadStyle().Render(marker)
		title = m.getUnreadStyle().Render(title)
	}
	line := date + " " + marker + " " + m.renderBadge(a) + " " + title + m.getHelpStyle().Render(suffix)
	return m.applyHighlight(line, false)
}

// previewLine summarizes the selected article in one line.
func (m Model) previewLine(a api.Article) string {
	text := ""
	if a.Analysis != nil && a.Analysis.Summary != nil {
		text = *a.Analysis.Summary
	}
	if text == "" {
		text = api.Str(a.Content)
	}
	return "  " + content.Preview(text, max(10, m.width-2))
}

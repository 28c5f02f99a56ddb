package ui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/config"
	"github.com/baitwatch/baitwatch/internal/database"
	"github.com/baitwatch/baitwatch/internal/logging"
)

const fetchTimeout = 30 * time.Second

// refreshFeed reloads the first page. The resulting states reach the model
// through the controller subscription as FeedStateMsg.
func refreshFeed(ctrl FeedController) tea.Cmd {
	return func() tea.Msg {
		ctrl.Refresh(context.Background())
		return nil
	}
}

func selectSource(ctrl FeedController, source string) tea.Cmd {
	return func() tea.Msg {
		logging.Info("Selecting source", "source", sourceLabel(source))
		ctrl.SelectSource(context.Background(), source)
		return nil
	}
}

func loadMore(ctrl FeedController) tea.Cmd {
	return func() tea.Msg {
		ctrl.LoadMore(context.Background())
		return LoadMoreDoneMsg{}
	}
}

func fetchArticle(client ArticleClient, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		article, err := client.FetchArticleByID(ctx, id)
		if err != nil {
			logging.Warn("fetchArticle failed, using list copy", "id", id, "error", err)
			return ArticleLoadedMsg{ID: id, Err: err}
		}
		return ArticleLoadedMsg{ID: id, Article: article}
	}
}

// loadSources merges the sources file with what the backend reports.
func loadSources(client ArticleClient, fileSources []config.SourceEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		sources := append([]config.SourceEntry(nil), fileSources...)
		known := make(map[string]bool, len(sources))
		for _, s := range sources {
			known[s.Name] = true
		}

		remote, err := client.FetchSources(ctx)
		if err != nil {
			logging.Debug("FetchSources failed, using sources file only", "error", err)
			return SourcesLoadedMsg{Sources: sources}
		}
		for _, name := range remote {
			if name != "" && !known[name] {
				known[name] = true
				sources = append(sources, config.SourceEntry{Name: name})
			}
		}
		return SourcesLoadedMsg{Sources: sources}
	}
}

func loadReadArticles(queries *database.Queries) tea.Cmd {
	return func() tea.Msg {
		ids, err := queries.ListReadArticleIDs(context.Background())
		if err != nil {
			logging.Error("loadReadArticles failed", "error", err)
			return ErrorMsg{Err: err}
		}
		return ReadArticlesLoadedMsg{IDs: ids}
	}
}

func markArticleRead(queries *database.Queries, article api.Article) tea.Cmd {
	return func() tea.Msg {
		err := queries.MarkArticleRead(context.Background(), database.MarkArticleReadParams{
			ArticleID: article.ID,
			Source:    article.Source,
			ReadAt:    time.Now().UTC(),
		})
		if err != nil {
			logging.Error("Error marking article as read", "id", article.ID, "error", err)
			return nil
		}
		return ArticleReadStatusMsg{ID: article.ID, Read: true}
	}
}

func markArticleUnread(queries *database.Queries, id string) tea.Cmd {
	return func() tea.Msg {
		if err := queries.MarkArticleUnread(context.Background(), id); err != nil {
			logging.Error("Error marking article as unread", "id", id, "error", err)
			return nil
		}
		return ArticleReadStatusMsg{ID: id, Read: false}
	}
}

func loadLogList(queries *database.Queries) tea.Cmd {
	return func() tea.Msg {
		logs, err := queries.GetLogMessages(context.Background(), 1000)
		if err != nil {
			logging.Error("loadLogList failed", "error", err)
			return ErrorMsg{Err: err}
		}
		return LogListLoadedMsg{Logs: logs}
	}
}

func clearAllLogMessages(queries *database.Queries) tea.Cmd {
	return func() tea.Msg {
		if err := queries.DeleteAllLogMessages(context.Background()); err != nil {
			logging.Error("clearAllLogMessages failed", "error", err)
			return ErrorMsg{Err: err}
		}
		return LogListLoadedMsg{Logs: []database.LogMessage{}}
	}
}

func saveConfig(queries *database.Queries, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		if err := config.SaveConfig(queries, cfg); err != nil {
			logging.Error("saveConfig failed", "error", err)
			return ErrorMsg{Err: err}
		}
		return ConfigSavedMsg{}
	}
}

func openLink(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd

		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			logging.Warn("Unsupported platform for opening links", "platform", runtime.GOOS)
			return nil
		}

		if err := cmd.Start(); err != nil {
			logging.Error("Error opening link", "url", url, "error", err)
		}
		return nil
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

package harness

import (
	"sort"
	"sync"

	"github.com/baitwatch/baitwatch/internal/api"
)

// ListContentLimit is how much content the list endpoint keeps per article;
// the by-id endpoint returns it in full.
const ListContentLimit = 500

// Store holds the articles served by the harness, newest first.
type Store struct {
	mu       sync.RWMutex
	articles []api.Article
	byID     map[string]int
}

func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Add inserts articles, replacing any existing article with the same id.
func (s *Store) Add(articles ...api.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range articles {
		if i, ok := s.byID[a.ID]; ok {
			s.articles[i] = a
			continue
		}
		s.articles = append(s.articles, a)
		s.byID[a.ID] = len(s.articles) - 1
	}

	sort.SliceStable(s.articles, func(i, j int) bool {
		return api.Str(s.articles[i].PublishedAt) > api.Str(s.articles[j].PublishedAt)
	})
	for i, a := range s.articles {
		s.byID[a.ID] = i
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// List returns up to limit articles starting at offset, optionally filtered by
// source. A limit of 0 returns everything after offset. Content is cut to
// ListContentLimit runes.
func (s *Store) List(limit, offset int, source string) []api.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matching := make([]api.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if source == "" || a.Source == source {
			matching = append(matching, a)
		}
	}

	if offset >= len(matching) {
		return []api.Article{}
	}
	end := len(matching)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page := make([]api.Article, 0, end-offset)
	for _, a := range matching[offset:end] {
		page = append(page, truncateContent(a))
	}
	return page
}

func (s *Store) Get(id string) (api.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return api.Article{}, false
	}
	return s.articles[i], true
}

// Sources returns the distinct sources in the store, sorted.
func (s *Store) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	sources := []string{}
	for _, a := range s.articles {
		if !seen[a.Source] {
			seen[a.Source] = true
			sources = append(sources, a.Source)
		}
	}
	sort.Strings(sources)
	return sources
}

func truncateContent(a api.Article) api.Article {
	if a.Content == nil {
		return a
	}
	runes := []rune(*a.Content)
	if len(runes) <= ListContentLimit {
		return a
	}
	short := string(runes[:ListContentLimit]) + "..."
	a.Content = &short
	return a
}

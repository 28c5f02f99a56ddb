package harness

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/content"
	"github.com/baitwatch/baitwatch/internal/logging"
	"github.com/baitwatch/baitwatch/internal/version"
)

const seedTimeout = 30 * time.Second

// Seeder turns items of a source's RSS feed into unanalyzed articles.
type Seeder struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewSeeder(client *http.Client) *Seeder {
	if client == nil {
		client = &http.Client{Timeout: seedTimeout}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = version.GetUserAgent()
	return &Seeder{client: client, parser: parser}
}

// Seed fetches the feed behind pageURL and converts its items to articles
// attributed to source. pageURL may be the feed itself or a page linking to it.
func (s *Seeder) Seed(ctx context.Context, source, pageURL string) ([]api.Article, error) {
	feedURL, err := DiscoverFeed(ctx, s.client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover feed for %s: %w", pageURL, err)
	}
	if feedURL != pageURL {
		logging.Debug("Discovered feed", "source", source, "page", pageURL, "feed", feedURL)
	}

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}
	return ItemsToArticles(source, feed), nil
}

// ItemsToArticles maps feed items to articles. Items without a link are skipped.
func ItemsToArticles(source string, feed *gofeed.Feed) []api.Article {
	articles := make([]api.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		article := api.Article{
			ID:     uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.Link)).String(),
			URL:    item.Link,
			Title:  strings.TrimSpace(item.Title),
			Source: source,
		}

		if item.PublishedParsed != nil {
			published := item.PublishedParsed.UTC().Format(time.RFC3339)
			article.PublishedAt = &published
		} else if item.Published != "" {
			published := item.Published
			article.PublishedAt = &published
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}
		if text := content.PlainText(body); text != "" {
			article.Content = &text
		}

		if image := itemImage(item, body); image != "" {
			article.ImageURL = &image
		}

		articles = append(articles, article)
	}
	return articles
}

func itemImage(item *gofeed.Item, body string) string {
	if item.Image != nil && item.Image.URL != "" {
		return resolve(item.Link, item.Image.URL)
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return resolve(item.Link, enc.URL)
		}
	}
	return ExtractImageURL(body, item.Link)
}

var imageMetaProps = []string{"og:image", "twitter:image", "image", "og:image:url"}

// ExtractImageURL finds a lead image in an HTML fragment or page: the common
// meta tags first, then the first <img>. Relative URLs resolve against base.
func ExtractImageURL(html, base string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, prop := range imageMetaProps {
		sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, prop, prop)).First()
		if val, ok := sel.Attr("content"); ok && val != "" {
			return resolve(base, val)
		}
	}

	if src, ok := doc.Find("img[src]").First().Attr("src"); ok && src != "" {
		return resolve(base, src)
	}
	return ""
}

func resolve(base, ref string) string {
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return refURL.String()
	}
	return baseURL.ResolveReference(refURL).String()
}

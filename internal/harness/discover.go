package harness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/baitwatch/baitwatch/internal/version"
)

// maxPageSize bounds how much of an HTML page is read while looking for a feed link.
const maxPageSize = 2 << 20

// DiscoverFeed resolves pageURL to a feed URL. Feed responses are returned
// as-is; HTML pages are searched for an RSS or Atom alternate link.
func DiscoverFeed(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.GetUserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if isFeedContentType(contentType) {
		return pageURL, nil
	}
	if !isHTMLContentType(contentType) {
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return DiscoverFeedFromHTML(string(body), pageURL)
}

// DiscoverFeedFromHTML returns the first feed link in htmlContent, resolved against baseURL.
func DiscoverFeedFromHTML(htmlContent string, baseURL string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	href := findFeedLink(doc)
	if href == "" {
		return "", fmt.Errorf("no feed link found in HTML")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return href, nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid feed link %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func findFeedLink(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "link" {
		var rel, href, typeAttr string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "rel":
				rel = attr.Val
			case "href":
				href = attr.Val
			case "type":
				typeAttr = attr.Val
			}
		}

		if strings.EqualFold(rel, "alternate") && isFeedType(typeAttr) && href != "" {
			return href
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findFeedLink(c); result != "" {
			return result
		}
	}

	return ""
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func isFeedContentType(contentType string) bool {
	switch mediaType(contentType) {
	case "application/rss+xml", "application/atom+xml", "application/xml", "text/xml":
		return true
	}
	return false
}

func isHTMLContentType(contentType string) bool {
	return mediaType(contentType) == "text/html"
}

func isFeedType(typeAttr string) bool {
	typeAttr = strings.ToLower(typeAttr)
	return typeAttr == "application/rss+xml" || typeAttr == "application/atom+xml"
}

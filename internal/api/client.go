package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/baitwatch/baitwatch/internal/logging"
	"github.com/baitwatch/baitwatch/internal/version"
)

const DefaultTimeout = 30 * time.Second

// maxBodySize bounds how much of a response is read.
const maxBodySize = 16 << 20

var errTimeout = errors.New("timeout")

// Client talks to the clickbait verifier backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is still
// wrapped so every request carries the User-Agent and a request id.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: missing host", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.http
	wrapped.Transport = &requestTransport{
		Transport: base,
		UserAgent: version.GetUserAgent(),
	}
	c.http = &wrapped

	return c, nil
}

// BaseURL returns the backend root this client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchArticles requests one page of the feed. An empty source means all sources.
func (c *Client) FetchArticles(ctx context.Context, limit, offset int, source string) (*FeedPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if source != "" {
		q.Set("source", source)
	}

	var page FeedPage
	if err := c.get(ctx, "fetch articles", c.endpoint(q, "api", "articles"), &page); err != nil {
		return nil, err
	}
	if page.Articles == nil {
		page.Articles = []Article{}
	}
	return &page, nil
}

// FetchArticleByID requests a single article with its full content.
func (c *Client) FetchArticleByID(ctx context.Context, id string) (*Article, error) {
	if id == "" {
		return nil, fmt.Errorf("fetch article: %w", ErrNotFound)
	}

	var article Article
	if err := c.get(ctx, "fetch article", c.endpoint(nil, "api", "articles", id), &article); err != nil {
		return nil, err
	}
	if article.ID == "" {
		return nil, &ServerError{StatusCode: http.StatusNotFound, Message: ErrNotFound.Error()}
	}
	return &article, nil
}

// FetchSources lists the sources the backend knows about.
func (c *Client) FetchSources(ctx context.Context) ([]string, error) {
	var list SourceList
	if err := c.get(ctx, "fetch sources", c.endpoint(nil, "api", "sources"), &list); err != nil {
		return nil, err
	}
	return list.Sources, nil
}

// Health calls the backend root endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "health", c.endpoint(nil), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) endpoint(q url.Values, segments ...string) string {
	u := *c.baseURL
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.Path = c.baseURL.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.baseURL.EscapedPath() + "/" + strings.Join(escaped, "/")
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, op, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logging.Warn("API request failed", "op", op, "url", endpoint, "error", err)
		return networkError(op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return networkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &ServerError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
		logging.Warn("API returned error status", "op", op, "url", endpoint, "status", resp.StatusCode, "error", serr)
		return serr
	}

	return decodeBody(body, v)
}

func networkError(op string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &NetworkError{Op: op, Err: errTimeout}
		}
		return &NetworkError{Op: op, Err: urlErr.Err}
	}
	return &NetworkError{Op: op, Err: err}
}

// decodeBody decodes a success body into v. Some backends answer failures
// with 200 and a [{"error": "..."}, status] pair; that shape becomes a ServerError.
func decodeBody(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pair []json.RawMessage
		if err := json.Unmarshal(trimmed, &pair); err == nil && len(pair) == 2 {
			var status int
			if err := json.Unmarshal(pair[1], &status); err == nil {
				return &ServerError{StatusCode: status, Message: errorMessage(pair[0])}
			}
		}
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		return &ServerError{StatusCode: http.StatusOK, Message: fmt.Sprintf("invalid response: %v", err)}
	}
	return nil
}

// errorMessage extracts {"detail": ...} or {"error": ...} from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}
	return ""
}

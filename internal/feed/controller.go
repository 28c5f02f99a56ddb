// Package feed owns the paginated article list: the pagination cursor, the
// source filter and the loading/success/error state shown by the UI.
package feed

import (
	"context"
	"sync"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/logging"
)

const (
	DefaultPageSize = 20

	// AllSources is the unfiltered source selection.
	AllSources = ""

	UnknownErrorMessage = "unknown error"
)

// Client fetches one page of the feed. *api.Client satisfies it.
type Client interface {
	FetchArticles(ctx context.Context, limit, offset int, source string) (*api.FeedPage, error)
}

type Option func(*Controller)

// WithPageSize sets the page size; values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSource sets the initial source filter without fetching.
func WithSource(source string) Option {
	return func(c *Controller) {
		c.selectedSource = source
	}
}

// Controller orchestrates page loads against a Client and publishes the
// resulting State. Its methods block until the fetch settles, so callers run
// them off the UI goroutine; they are safe for concurrent use.
//
// Full reloads are not fenced against each other or against LoadMore: when
// two fetches overlap, whichever settles last determines the published state.
type Controller struct {
	client   Client
	pageSize int

	mu             sync.Mutex
	state          State
	selectedSource string
	offset         int
	endReached     bool
	loadingMore    bool

	seq uint64

	pubMu       sync.Mutex
	published   uint64
	subscribers map[int]func(State)
	nextSubID   int
}

// NewController creates a controller in the Loading state. It does not fetch;
// call LoadArticles or Refresh for the first page.
func NewController(client Client, opts ...Option) *Controller {
	c := &Controller{
		client:      client,
		pageSize:    DefaultPageSize,
		state:       Loading(),
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to be called with each published state. Deliveries
// are serialized and never go backwards: a state that was superseded before
// it could be delivered is skipped, so the last state a subscriber sees is
// always the controller's current one. fn runs on the publishing goroutine.
// The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.pubMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.pubMu.Unlock()

	return func() {
		c.pubMu.Lock()
		delete(c.subscribers, id)
		c.pubMu.Unlock()
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) SelectedSource() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedSource
}

func (c *Controller) EndReached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endReached
}

// LoadingMore reports whether a LoadMore fetch is outstanding.
func (c *Controller) LoadingMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadingMore
}

func (c *Controller) PageSize() int {
	return c.pageSize
}

// LoadArticles performs a full reload of the first page for source,
// replacing whatever list is currently published.
func (c *Controller) LoadArticles(ctx context.Context, source string) {
	c.mu.Lock()
	c.offset = 0
	c.endReached = false
	c.setState(Loading())

	logging.Debug("Loading articles", "source", source, "limit", c.pageSize)
	page, err := c.client.FetchArticles(ctx, c.pageSize, 0, source)

	c.mu.Lock()
	if err != nil {
		logging.Error("Failed to load articles", "source", source, "error", err)
		c.setState(Failure(errorMessage(err)))
		return
	}
	if page == nil {
		page = &api.FeedPage{}
	}
	c.endReached = len(page.Articles) < c.pageSize
	c.setState(Success(page.Articles))
}

// Refresh reloads the first page for the current source filter.
func (c *Controller) Refresh(ctx context.Context) {
	c.LoadArticles(ctx, c.SelectedSource())
}

// SelectSource changes the source filter and reloads the first page.
func (c *Controller) SelectSource(ctx context.Context, source string) {
	c.mu.Lock()
	c.selectedSource = source
	c.mu.Unlock()

	c.LoadArticles(ctx, source)
}

// LoadMore fetches the next page and appends it to the published list.
// It is a no-op while another LoadMore is outstanding or once the end of the
// feed has been reached.
//
// A failed LoadMore publishes an Error state and the previously loaded
// articles are not kept in it.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.loadingMore || c.endReached {
		c.mu.Unlock()
		return
	}
	c.loadingMore = true
	c.offset += c.pageSize
	offset := c.offset
	source := c.selectedSource
	var base []api.Article
	if c.state.IsSuccess() {
		base = c.state.Articles
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loadingMore = false
		c.mu.Unlock()
	}()

	logging.Debug("Loading more articles", "source", source, "offset", offset, "limit", c.pageSize)
	page, err := c.client.FetchArticles(ctx, c.pageSize, offset, source)

	c.mu.Lock()
	if err != nil {
		logging.Error("Failed to load more articles", "source", source, "offset", offset, "error", err)
		c.setState(Failure(errorMessage(err)))
		return
	}
	if page == nil {
		page = &api.FeedPage{}
	}
	c.endReached = len(page.Articles) < c.pageSize

	combined := make([]api.Article, 0, len(base)+len(page.Articles))
	combined = append(combined, base...)
	combined = append(combined, page.Articles...)
	c.setState(Success(combined))
}

// setState stores s, releases c.mu (which the caller must hold) and
// notifies subscribers outside of it.
func (c *Controller) setState(s State) {
	c.state = s
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	if seq <= c.published {
		return
	}
	c.published = seq
	for _, fn := range c.subscribers {
		fn(s)
	}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return UnknownErrorMessage
	}
	return err.Error()
}

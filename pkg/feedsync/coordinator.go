// Package feedsync keeps the headline and general feeds in sync with the remote news API.
// It decides between cached and fresh data, persists headlines, and publishes results
// to observers through replay-latest channels.
package feedsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdeck/pkg/broadcast"
	"github.com/umputun/newsdeck/pkg/domain"
)

//go:generate moq -out mocks/client.go -pkg mocks -skip-ensure -fmt goimports . FeedClient
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// DefaultTTL is the snapshot freshness window used when none is configured
const DefaultTTL = 5 * time.Minute

// persistTimeout bounds bookmark lookups and the headline replace of one load
const persistTimeout = 30 * time.Second

// ErrClosed is returned by requests made after Close
var ErrClosed = errors.New("coordinator closed")

// FeedClient fetches article batches from the remote API
type FeedClient interface {
	FetchHeadlines(ctx context.Context) ([]domain.Article, error)
	FetchTopic(ctx context.Context, topic domain.TopicQuery) ([]domain.Article, error)
}

// Store is the persistent side of the headline feed and bookmarks
type Store interface {
	ExistsBookmarked(ctx context.Context, title string) (bool, error)
	ReplaceHeadlines(ctx context.Context, batch []domain.CachedArticle) error
	Upsert(ctx context.Context, a domain.CachedArticle) error
	Update(ctx context.Context, a domain.CachedArticle) error
	FindByTitle(ctx context.Context, title string) (domain.CachedArticle, error)
	GetBookmarked(ctx context.Context) ([]domain.CachedArticle, error)
	WatchBookmarked(ctx context.Context) broadcast.Observable[[]domain.CachedArticle]
}

// Params configures the coordinator
type Params struct {
	Client       FeedClient
	Store        Store
	Topic        domain.TopicQuery
	TTL          time.Duration
	FetchTimeout time.Duration
	Now          func() time.Time
}

// Coordinator owns both feed caches and their result channels
type Coordinator struct {
	client FeedClient
	store  Store
	topic  domain.TopicQuery

	headlines *feed[domain.CachedArticle]
	general   *feed[domain.Article]
	persistMu sync.Mutex // serializes headline replace with the generation check

	bookmarks     *bookmarkQueue
	bookmarksOnce sync.Once
	bookmarksLive broadcast.Observable[[]domain.CachedArticle]

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	mu     sync.RWMutex
	closed bool
}

// feed ties a cache to its result channel and loader
type feed[T any] struct {
	kind    domain.FeedKind
	cache   *feedCache[T]
	ch      *broadcast.Channel[domain.Result[[]T]]
	load    func(ctx context.Context, gen uint64) ([]T, error)
	timeout time.Duration
}

// FeedStatus describes the cache of one feed
type FeedStatus struct {
	Feed      domain.FeedKind `json:"feed"`
	State     string          `json:"state,omitempty"`
	Size      int             `json:"size"`
	Valid     bool            `json:"valid"`
	InFlight  bool            `json:"in_flight"`
	FetchedAt *time.Time      `json:"fetched_at,omitempty"`
	AgeSec    int64           `json:"age_sec,omitempty"`
}

// NewCoordinator makes a coordinator. Nothing is fetched until the first request.
func NewCoordinator(p Params) *Coordinator {
	if p.TTL <= 0 {
		p.TTL = DefaultTTL
	}
	if p.FetchTimeout <= 0 {
		p.FetchTimeout = time.Minute
	}
	if p.Now == nil {
		p.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		client: p.Client,
		store:  p.Store,
		topic:  p.Topic,
		ctx:    ctx,
		cancel: cancel,
	}
	c.headlines = &feed[domain.CachedArticle]{
		kind:    domain.FeedHeadline,
		cache:   newFeedCache[domain.CachedArticle](p.TTL, p.Now),
		ch:      broadcast.New[domain.Result[[]domain.CachedArticle]](),
		load:    c.loadHeadlines,
		timeout: p.FetchTimeout,
	}
	c.general = &feed[domain.Article]{
		kind:    domain.FeedGeneral,
		cache:   newFeedCache[domain.Article](p.TTL, p.Now),
		ch:      broadcast.New[domain.Result[[]domain.Article]](),
		load:    c.loadGeneral,
		timeout: p.FetchTimeout,
	}
	c.bookmarks = &bookmarkQueue{spawn: c.spawn, store: p.Store, notify: make(chan struct{})}
	return c
}

// Headlines returns the headline results. Subscribers are called synchronously
// and must not call back into the coordinator from the callback.
func (c *Coordinator) Headlines() broadcast.Observable[domain.Result[[]domain.CachedArticle]] {
	return c.headlines.ch
}

// General returns the general feed results, same callback rules as Headlines
func (c *Coordinator) General() broadcast.Observable[domain.Result[[]domain.Article]] {
	return c.general.ch
}

// RequestLoad serves the feed from cache if fresh, otherwise starts a fetch unless
// one is already running. Never blocks on network or storage.
func (c *Coordinator) RequestLoad(kind domain.FeedKind) error {
	if c.isClosed() {
		return ErrClosed
	}
	switch kind {
	case domain.FeedHeadline:
		c.headlines.request(c.spawn)
	case domain.FeedGeneral:
		c.general.request(c.spawn)
	default:
		return fmt.Errorf("unknown feed %q", kind)
	}
	return nil
}

// Refresh drops the cached feed and loads it again
func (c *Coordinator) Refresh(kind domain.FeedKind) error {
	if c.isClosed() {
		return ErrClosed
	}
	switch kind {
	case domain.FeedHeadline:
		c.headlines.cache.reset()
	case domain.FeedGeneral:
		c.general.cache.reset()
	default:
		return fmt.Errorf("unknown feed %q", kind)
	}
	lgr.Printf("[DEBUG] %s cache cleared", kind)
	return c.RequestLoad(kind)
}

// RefreshAll refreshes both feeds
func (c *Coordinator) RefreshAll() error {
	for _, kind := range domain.AllFeeds {
		if err := c.Refresh(kind); err != nil {
			return err
		}
	}
	return nil
}

// CachedHeadlines returns the headline snapshot if it is still fresh
func (c *Coordinator) CachedHeadlines() ([]domain.CachedArticle, bool) {
	return c.headlines.cache.valid()
}

// CachedGeneral returns the general snapshot if it is still fresh
func (c *Coordinator) CachedGeneral() ([]domain.Article, bool) {
	return c.general.cache.valid()
}

// CacheAge returns the age of the feed snapshot, false if there is none
func (c *Coordinator) CacheAge(kind domain.FeedKind) (time.Duration, bool) {
	switch kind {
	case domain.FeedHeadline:
		return c.headlines.cache.age()
	case domain.FeedGeneral:
		return c.general.cache.age()
	}
	return 0, false
}

// Status reports both feed caches
func (c *Coordinator) Status() []FeedStatus {
	return []FeedStatus{c.headlines.status(), c.general.status()}
}

// Close stops accepting requests and waits for running fetches and bookmark writes
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.group.Wait()
	c.cancel()
	return err
}

func (c *Coordinator) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// spawn runs fn on the coordinator group, false if closed
func (c *Coordinator) spawn(fn func()) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	c.group.Go(func() error {
		fn()
		return nil
	})
	return true
}

func (c *Coordinator) loadHeadlines(ctx context.Context, gen uint64) ([]domain.CachedArticle, error) {
	articles, err := c.client.FetchHeadlines(ctx)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, domain.ErrNoArticles
	}

	// storage work runs on its own deadline, the fetch may have used up most of ctx
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	// bookmark writes queued before the fetch must land before their state is read
	if err := c.bookmarks.wait(sctx); err != nil {
		lgr.Printf("[WARN] queued bookmark writes not finished: %v", err)
	}

	records := make([]domain.CachedArticle, 0, len(articles))
	for _, a := range articles {
		bookmarked, err := c.store.ExistsBookmarked(sctx, a.Title)
		if err != nil {
			lgr.Printf("[WARN] failed to check bookmark state of %q: %v", a.Title, err)
		}
		records = append(records, a.ToCached(bookmarked))
	}

	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	if !c.headlines.cache.current(gen) {
		return records, nil // superseded, the cache drops the result
	}
	if err := c.store.ReplaceHeadlines(sctx, records); err != nil {
		lgr.Printf("[WARN] failed to store %d headlines: %v", len(records), err)
	}
	return records, nil
}

func (c *Coordinator) loadGeneral(ctx context.Context, _ uint64) ([]domain.Article, error) {
	articles, err := c.client.FetchTopic(ctx, c.topic)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, domain.ErrNoArticles
	}
	return articles, nil
}

// request runs the check-and-set and starts the pipeline if the caller owns the fetch
func (f *feed[T]) request(spawn func(func()) bool) {
	f.cache.begin(
		func(snapshot []T) { f.ch.Publish(domain.Success(snapshot)) },
		func(gen uint64) {
			f.ch.Publish(domain.Loading[[]T]())
			if !spawn(func() { f.run(gen) }) {
				lgr.Printf("[DEBUG] %s fetch not started, coordinator closed", f.kind)
			}
		},
	)
}

// run fetches the batch and publishes the terminal result
func (f *feed[T]) run(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	st := time.Now()
	data, err := f.load(ctx, gen)

	applied := f.cache.end(gen, func(prev []T, replay func([]T) []T) []T {
		if err == nil {
			data = replay(data)
		}
		res, next := outcome(f.kind, data, err, prev)
		f.ch.Publish(res)
		return next
	})
	if !applied {
		lgr.Printf("[DEBUG] %s fetch result dropped, cache was refreshed meanwhile", f.kind)
		return
	}
	if err == nil {
		lgr.Printf("[DEBUG] %s fetched %d articles in %v", f.kind, len(data), time.Since(st))
	}
}

// outcome maps a fetch result to the published result and the next snapshot (nil keeps the current one)
func outcome[T any](kind domain.FeedKind, data []T, err error, prev []T) (domain.Result[[]T], []T) {
	if err == nil {
		return domain.Success(data), data
	}

	var respErr *domain.ResponseError
	switch {
	case errors.Is(err, domain.ErrNoArticles):
		lgr.Printf("[WARN] %s feed returned no articles", kind)
		return domain.Failure[[]T](err.Error()), nil
	case errors.As(err, &respErr):
		lgr.Printf("[WARN] %s feed request rejected: %v", kind, err)
		return domain.Failure[[]T](respErr.Error()), nil
	case prev != nil:
		lgr.Printf("[WARN] %s feed unreachable, serving %d cached articles: %v", kind, len(prev), err)
		return domain.Success(prev), nil
	default:
		lgr.Printf("[WARN] %s feed unreachable, nothing cached: %v", kind, err)
		return domain.Failure[[]T](err.Error()), nil
	}
}

func (f *feed[T]) status() FeedStatus {
	st := f.cache.stats()
	res := FeedStatus{Feed: f.kind, Size: st.size, Valid: st.valid, InFlight: st.inFlight}
	if latest, ok := f.ch.Latest(); ok {
		res.State = latest.State.String()
	}
	if !st.fetchedAt.IsZero() {
		fetchedAt := st.fetchedAt
		res.FetchedAt = &fetchedAt
		res.AgeSec = int64(st.age / time.Second)
	}
	return res
}

package feedsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/broadcast"
	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/feedsync/mocks"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 7, 21, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func articles(prefix string, n int) []domain.Article {
	res := make([]domain.Article, n)
	for i := range res {
		res[i] = domain.Article{
			Title:       fmt.Sprintf("%s %d", prefix, i+1),
			PublishedAt: fmt.Sprintf("2025-07-21T%02d:00:00Z", i),
			URL:         fmt.Sprintf("https://example.com/%s/%d", prefix, i+1),
			SourceName:  "Example",
		}
	}
	return res
}

func newStoreMock() *mocks.StoreMock {
	return &mocks.StoreMock{
		ExistsBookmarkedFunc: func(ctx context.Context, title string) (bool, error) { return false, nil },
		ReplaceHeadlinesFunc: func(ctx context.Context, batch []domain.CachedArticle) error { return nil },
		UpsertFunc:           func(ctx context.Context, a domain.CachedArticle) error { return nil },
		UpdateFunc:           func(ctx context.Context, a domain.CachedArticle) error { return nil },
	}
}

func newTestCoordinator(t *testing.T, client FeedClient, store Store, clock *fakeClock) *Coordinator {
	t.Helper()
	c := NewCoordinator(Params{
		Client: client,
		Store:  store,
		Topic:  domain.TopicQuery{Query: "football", Language: "en", SortBy: "publishedAt"},
		TTL:    5 * time.Minute,
		Now:    clock.Now,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// waitTerminal waits for the first non-loading result of the observable
func waitTerminal[T any](t *testing.T, o broadcast.Observable[domain.Result[T]]) domain.Result[T] {
	t.Helper()
	var res domain.Result[T]
	require.Eventually(t, func() bool {
		r, ok := o.Latest()
		if !ok || !r.IsTerminal() {
			return false
		}
		res = r
		return true
	}, 2*time.Second, time.Millisecond)
	return res
}

// waitIdle waits until no fetch is running for both feeds
func waitIdle(t *testing.T, c *Coordinator) {
	t.Helper()
	require.Eventually(t, func() bool {
		return !c.headlines.cache.stats().inFlight && !c.general.cache.stats().inFlight
	}, 2*time.Second, time.Millisecond)
}

func TestCoordinator_RequestLoadHeadlines(t *testing.T) {
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) { return articles("news", 3), nil },
	}
	store := newStoreMock()
	store.ExistsBookmarkedFunc = func(ctx context.Context, title string) (bool, error) { return title == "news 2", nil }
	c := newTestCoordinator(t, client, store, newFakeClock())

	var mu sync.Mutex
	var states []domain.ResultState
	unsubscribe := c.Headlines().Subscribe(func(r domain.Result[[]domain.CachedArticle]) {
		mu.Lock()
		states = append(states, r.State)
		mu.Unlock()
	})
	defer unsubscribe()

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	res := waitTerminal(t, c.Headlines())
	waitIdle(t, c)

	require.Equal(t, domain.StateSuccess, res.State)
	require.Len(t, res.Data, 3)
	assert.False(t, res.Data[0].IsBookmarked)
	assert.True(t, res.Data[1].IsBookmarked, "bookmark state looked up in store")

	require.Len(t, store.ReplaceHeadlinesCalls(), 1)
	assert.Equal(t, res.Data, store.ReplaceHeadlinesCalls()[0].Batch)
	assert.Len(t, store.ExistsBookmarkedCalls(), 3)

	mu.Lock()
	assert.Equal(t, []domain.ResultState{domain.StateLoading, domain.StateSuccess}, states)
	mu.Unlock()

	// second request within ttl is served from memory
	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	waitIdle(t, c)
	assert.Len(t, client.FetchHeadlinesCalls(), 1)
	mu.Lock()
	assert.Equal(t, []domain.ResultState{domain.StateLoading, domain.StateSuccess, domain.StateSuccess}, states)
	mu.Unlock()

	cached, ok := c.CachedHeadlines()
	require.True(t, ok)
	assert.Equal(t, res.Data, cached)
}

func TestCoordinator_TTL(t *testing.T) {
	clock := newFakeClock()
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) { return articles("news", 2), nil },
	}
	c := newTestCoordinator(t, client, newStoreMock(), clock)

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	waitTerminal(t, c.Headlines())
	waitIdle(t, c)

	clock.Add(4 * time.Minute)
	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	waitIdle(t, c)
	assert.Len(t, client.FetchHeadlinesCalls(), 1, "4 minutes old snapshot still valid")
	age, ok := c.CacheAge(domain.FeedHeadline)
	require.True(t, ok)
	assert.Equal(t, 4*time.Minute, age)

	clock.Add(2 * time.Minute)
	_, ok = c.CachedHeadlines()
	assert.False(t, ok, "6 minutes old snapshot expired")
	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	waitTerminal(t, c.Headlines())
	waitIdle(t, c)
	assert.Len(t, client.FetchHeadlinesCalls(), 2)

	age, ok = c.CacheAge(domain.FeedHeadline)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), age, "timestamp updated by new fetch")
}

func TestCoordinator_NoDuplicateFetch(t *testing.T) {
	release := make(chan struct{})
	client := &mocks.FeedClientMock{
		FetchTopicFunc: func(ctx context.Context, topic domain.TopicQuery) ([]domain.Article, error) {
			<-release
			return articles("topic", 2), nil
		},
	}
	c := newTestCoordinator(t, client, newStoreMock(), newFakeClock())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.RequestLoad(domain.FeedGeneral))
		}()
	}
	wg.Wait()

	latest, ok := c.General().Latest()
	require.True(t, ok)
	assert.Equal(t, domain.StateLoading, latest.State)
	assert.True(t, c.general.cache.stats().inFlight)

	close(release)
	res := waitTerminal(t, c.General())
	waitIdle(t, c)
	assert.Equal(t, domain.StateSuccess, res.State)
	assert.Len(t, res.Data, 2)
	assert.Len(t, client.FetchTopicCalls(), 1)
}

func TestCoordinator_GeneralFeed(t *testing.T) {
	client := &mocks.FeedClientMock{
		FetchTopicFunc: func(ctx context.Context, topic domain.TopicQuery) ([]domain.Article, error) {
			return articles("topic", 4), nil
		},
	}
	store := newStoreMock()
	c := newTestCoordinator(t, client, store, newFakeClock())

	require.NoError(t, c.RequestLoad(domain.FeedGeneral))
	res := waitTerminal(t, c.General())
	waitIdle(t, c)

	assert.Equal(t, domain.StateSuccess, res.State)
	assert.Equal(t, articles("topic", 4), res.Data)
	require.Len(t, client.FetchTopicCalls(), 1)
	assert.Equal(t, domain.TopicQuery{Query: "football", Language: "en", SortBy: "publishedAt"},
		client.FetchTopicCalls()[0].Topic)
	assert.Empty(t, store.ReplaceHeadlinesCalls(), "general feed is not persisted")
	assert.Empty(t, store.ExistsBookmarkedCalls())
}

func TestCoordinator_TransportFailure(t *testing.T) {
	t.Run("stale snapshot served", func(t *testing.T) {
		clock := newFakeClock()
		var fail bool
		var mu sync.Mutex
		client := &mocks.FeedClientMock{
			FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) {
				mu.Lock()
				defer mu.Unlock()
				if fail {
					return nil, &domain.TransportError{Err: errors.New("connection refused")}
				}
				return articles("news", 2), nil
			},
		}
		c := newTestCoordinator(t, client, newStoreMock(), clock)

		require.NoError(t, c.RequestLoad(domain.FeedHeadline))
		first := waitTerminal(t, c.Headlines())
		waitIdle(t, c)

		mu.Lock()
		fail = true
		mu.Unlock()
		clock.Add(10 * time.Minute)

		require.NoError(t, c.RequestLoad(domain.FeedHeadline))
		res := waitTerminal(t, c.Headlines())
		waitIdle(t, c)

		assert.Equal(t, domain.StateSuccess, res.State)
		assert.Equal(t, first.Data, res.Data)
		age, ok := c.CacheAge(domain.FeedHeadline)
		require.True(t, ok)
		assert.Equal(t, 10*time.Minute, age, "stale snapshot keeps its timestamp")
		_, valid := c.CachedHeadlines()
		assert.False(t, valid)
	})

	t.Run("nothing cached", func(t *testing.T) {
		client := &mocks.FeedClientMock{
			FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) {
				return nil, &domain.TransportError{Err: errors.New("connection refused")}
			},
		}
		store := newStoreMock()
		c := newTestCoordinator(t, client, store, newFakeClock())

		require.NoError(t, c.RequestLoad(domain.FeedHeadline))
		res := waitTerminal(t, c.Headlines())
		waitIdle(t, c)

		assert.Equal(t, domain.StateError, res.State)
		assert.Equal(t, "connection refused", res.Message)
		assert.Empty(t, store.ReplaceHeadlinesCalls())

		// in-flight reset, the next request fetches again
		require.NoError(t, c.RequestLoad(domain.FeedHeadline))
		waitTerminal(t, c.Headlines())
		waitIdle(t, c)
		assert.Len(t, client.FetchHeadlinesCalls(), 2)
	})
}

func TestCoordinator_ResponseError(t *testing.T) {
	clock := newFakeClock()
	var mu sync.Mutex
	var fail bool
	client := &mocks.FeedClientMock{
		FetchTopicFunc: func(ctx context.Context, topic domain.TopicQuery) ([]domain.Article, error) {
			mu.Lock()
			defer mu.Unlock()
			if fail {
				return nil, &domain.ResponseError{StatusCode: 500, Message: "rate limited"}
			}
			return articles("topic", 1), nil
		},
	}
	c := newTestCoordinator(t, client, newStoreMock(), clock)

	require.NoError(t, c.RequestLoad(domain.FeedGeneral))
	waitTerminal(t, c.General())
	waitIdle(t, c)

	mu.Lock()
	fail = true
	mu.Unlock()
	clock.Add(6 * time.Minute)

	require.NoError(t, c.RequestLoad(domain.FeedGeneral))
	res := waitTerminal(t, c.General())
	waitIdle(t, c)

	assert.Equal(t, domain.StateError, res.State, "response errors never fall back to cache")
	assert.Equal(t, "rate limited", res.Message)
	assert.Equal(t, articles("topic", 1), c.general.cache.latest(), "cache unchanged")
	age, _ := c.CacheAge(domain.FeedGeneral)
	assert.Equal(t, 6*time.Minute, age)
}

func TestCoordinator_EmptyBatch(t *testing.T) {
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) { return nil, nil },
		FetchTopicFunc: func(ctx context.Context, topic domain.TopicQuery) ([]domain.Article, error) {
			return []domain.Article{}, nil
		},
	}
	store := newStoreMock()
	c := newTestCoordinator(t, client, store, newFakeClock())

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	require.NoError(t, c.RequestLoad(domain.FeedGeneral))
	hres := waitTerminal(t, c.Headlines())
	gres := waitTerminal(t, c.General())
	waitIdle(t, c)

	assert.Equal(t, domain.Failure[[]domain.CachedArticle]("no articles found"), hres)
	assert.Equal(t, domain.Failure[[]domain.Article]("no articles found"), gres)
	assert.Empty(t, store.ReplaceHeadlinesCalls())
	_, ok := c.CacheAge(domain.FeedHeadline)
	assert.False(t, ok)
}

func TestCoordinator_PersistFailureStillSucceeds(t *testing.T) {
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) { return articles("news", 2), nil },
	}
	store := newStoreMock()
	store.ReplaceHeadlinesFunc = func(ctx context.Context, batch []domain.CachedArticle) error {
		return errors.New("disk full")
	}
	store.ExistsBookmarkedFunc = func(ctx context.Context, title string) (bool, error) {
		return false, errors.New("db closed")
	}
	c := newTestCoordinator(t, client, store, newFakeClock())

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	res := waitTerminal(t, c.Headlines())
	waitIdle(t, c)

	assert.Equal(t, domain.StateSuccess, res.State)
	assert.Len(t, res.Data, 2)
	_, ok := c.CachedHeadlines()
	assert.True(t, ok)
}

func TestCoordinator_PersistOutlivesFetchDeadline(t *testing.T) {
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) {
			<-ctx.Done() // slow upstream answering right at the deadline
			return articles("news", 2), nil
		},
	}
	var mu sync.Mutex
	var ctxErrs []error
	store := newStoreMock()
	store.ExistsBookmarkedFunc = func(ctx context.Context, title string) (bool, error) {
		mu.Lock()
		ctxErrs = append(ctxErrs, ctx.Err())
		mu.Unlock()
		return false, nil
	}
	store.ReplaceHeadlinesFunc = func(ctx context.Context, batch []domain.CachedArticle) error {
		mu.Lock()
		ctxErrs = append(ctxErrs, ctx.Err())
		mu.Unlock()
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline, "storage work is bounded")
		return nil
	}
	c := NewCoordinator(Params{Client: client, Store: store, FetchTimeout: 50 * time.Millisecond, Now: newFakeClock().Now})
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	res := waitTerminal(t, c.Headlines())
	waitIdle(t, c)

	require.Equal(t, domain.StateSuccess, res.State)
	require.Len(t, store.ReplaceHeadlinesCalls(), 1)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []error{nil, nil, nil}, ctxErrs, "lookups and replace not cancelled by the fetch deadline")
}

func TestCoordinator_RefreshDuringFetch(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				close(firstStarted)
				<-releaseFirst
				return articles("old", 2), nil
			}
			return articles("new", 3), nil
		},
	}
	store := newStoreMock()
	c := newTestCoordinator(t, client, store, newFakeClock())

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	<-firstStarted

	require.NoError(t, c.Refresh(domain.FeedHeadline))
	res := waitTerminal(t, c.Headlines())
	assert.Equal(t, "new 1", res.Data[0].Title)

	close(releaseFirst)
	require.NoError(t, c.Close()) // waits for the superseded fetch

	latest, ok := c.Headlines().Latest()
	require.True(t, ok)
	assert.Len(t, latest.Data, 3, "superseded fetch does not overwrite newer result")
	assert.Equal(t, "new 1", c.headlines.cache.latest()[0].Title)
	require.Len(t, store.ReplaceHeadlinesCalls(), 1, "superseded fetch is not persisted")
	assert.Equal(t, "new 1", store.ReplaceHeadlinesCalls()[0].Batch[0].Title)
}

func TestCoordinator_RefreshClearsValidCache(t *testing.T) {
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) { return articles("news", 1), nil },
		FetchTopicFunc: func(ctx context.Context, topic domain.TopicQuery) ([]domain.Article, error) {
			return articles("topic", 1), nil
		},
	}
	c := newTestCoordinator(t, client, newStoreMock(), newFakeClock())

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	require.NoError(t, c.RequestLoad(domain.FeedGeneral))
	waitTerminal(t, c.Headlines())
	waitTerminal(t, c.General())
	waitIdle(t, c)

	require.NoError(t, c.RefreshAll())
	waitTerminal(t, c.Headlines())
	waitTerminal(t, c.General())
	waitIdle(t, c)

	assert.Len(t, client.FetchHeadlinesCalls(), 2)
	assert.Len(t, client.FetchTopicCalls(), 2)
}

func TestCoordinator_UnknownFeedAndClose(t *testing.T) {
	client := &mocks.FeedClientMock{}
	c := newTestCoordinator(t, client, newStoreMock(), newFakeClock())

	assert.EqualError(t, c.RequestLoad("sports"), `unknown feed "sports"`)
	assert.EqualError(t, c.Refresh("sports"), `unknown feed "sports"`)
	_, ok := c.CacheAge("sports")
	assert.False(t, ok)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.RequestLoad(domain.FeedHeadline), ErrClosed)
	assert.ErrorIs(t, c.Refresh(domain.FeedGeneral), ErrClosed)
	assert.Empty(t, client.FetchHeadlinesCalls())
}

func TestCoordinator_Status(t *testing.T) {
	clock := newFakeClock()
	client := &mocks.FeedClientMock{
		FetchHeadlinesFunc: func(ctx context.Context) ([]domain.Article, error) { return articles("news", 2), nil },
	}
	c := newTestCoordinator(t, client, newStoreMock(), clock)

	st := c.Status()
	require.Len(t, st, 2)
	assert.Equal(t, FeedStatus{Feed: domain.FeedHeadline}, st[0])
	assert.Equal(t, FeedStatus{Feed: domain.FeedGeneral}, st[1])

	require.NoError(t, c.RequestLoad(domain.FeedHeadline))
	waitTerminal(t, c.Headlines())
	waitIdle(t, c)
	clock.Add(90 * time.Second)

	st = c.Status()
	assert.Equal(t, "success", st[0].State)
	assert.Equal(t, 2, st[0].Size)
	assert.True(t, st[0].Valid)
	assert.False(t, st[0].InFlight)
	assert.Equal(t, int64(90), st[0].AgeSec)
	require.NotNil(t, st[0].FetchedAt)
	assert.Equal(t, clock.Now().Add(-90*time.Second), *st[0].FetchedAt)
}

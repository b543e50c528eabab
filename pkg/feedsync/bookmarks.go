package feedsync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdeck/pkg/broadcast"
	"github.com/umputun/newsdeck/pkg/domain"
)

// SetBookmark sets the bookmark flag on the caller's record, updates the headline snapshot
// and writes the change to the store in the background. Store failures are logged only.
// Writes are applied in call order.
func (c *Coordinator) SetBookmark(article *domain.CachedArticle, bookmarked bool) {
	if article == nil {
		return
	}
	article.IsBookmarked = bookmarked
	rec := *article

	c.bookmarks.push(rec)

	c.headlines.cache.modify(func(snapshot []domain.CachedArticle) []domain.CachedArticle {
		return withBookmark(snapshot, rec.Title, bookmarked)
	}, func(next []domain.CachedArticle, inFlight bool) {
		if latest, ok := c.headlines.ch.Latest(); ok && latest.State == domain.StateSuccess && !inFlight {
			c.headlines.ch.Publish(domain.Success(next))
		}
	})
}

// withBookmark returns a copy of list with the flag of title set, nil if title is missing
// or already has it. Snapshot slices are shared with subscribers and never mutated.
func withBookmark(list []domain.CachedArticle, title string, bookmarked bool) []domain.CachedArticle {
	idx := -1
	for i := range list {
		if list[i].Title == title {
			idx = i
			break
		}
	}
	if idx < 0 || list[idx].IsBookmarked == bookmarked {
		return nil
	}
	next := make([]domain.CachedArticle, len(list))
	copy(next, list)
	next[idx].IsBookmarked = bookmarked
	return next
}

// Bookmarks returns the live list of bookmarked articles, newest first,
// re-emitted on every change of the stored news
func (c *Coordinator) Bookmarks() broadcast.Observable[[]domain.CachedArticle] {
	c.bookmarksOnce.Do(func() {
		c.bookmarksLive = c.store.WatchBookmarked(c.ctx)
	})
	return c.bookmarksLive
}

// BookmarkedArticles returns the stored bookmarks, newest first
func (c *Coordinator) BookmarkedArticles(ctx context.Context) ([]domain.CachedArticle, error) {
	res, err := c.store.GetBookmarked(ctx)
	if err != nil {
		return nil, fmt.Errorf("get bookmarks: %w", err)
	}
	return res, nil
}

// LookupArticle finds an article by title in the headline snapshot, the general snapshot
// and then the store. Returns domain.ErrNotFound if none has it.
func (c *Coordinator) LookupArticle(ctx context.Context, title string) (domain.CachedArticle, error) {
	for _, a := range c.headlines.cache.latest() {
		if a.Title == title {
			return a, nil
		}
	}

	for _, a := range c.general.cache.latest() {
		if a.Title != title {
			continue
		}
		bookmarked, err := c.store.ExistsBookmarked(ctx, title)
		if err != nil {
			lgr.Printf("[WARN] failed to check bookmark state of %q: %v", title, err)
		}
		return a.ToCached(bookmarked), nil
	}

	rec, err := c.store.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CachedArticle{}, fmt.Errorf("article %q: %w", title, domain.ErrNotFound)
		}
		return domain.CachedArticle{}, fmt.Errorf("lookup article: %w", err)
	}
	return rec, nil
}

// bookmarkQueue applies bookmark writes one by one in submission order without blocking the caller
type bookmarkQueue struct {
	spawn func(func()) bool
	store Store

	mu      sync.Mutex
	pending []domain.CachedArticle
	running bool
	pushed  uint64        // writes accepted so far
	written uint64        // writes finished so far, failed ones included
	notify  chan struct{} // closed and replaced after every finished write
}

func (q *bookmarkQueue) push(rec domain.CachedArticle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, rec)
	q.pushed++
	if q.running {
		return
	}
	if q.spawn(q.drain) {
		q.running = true
		return
	}
	lgr.Printf("[WARN] bookmark of %q not saved, coordinator closed", rec.Title)
	q.pending = q.pending[:len(q.pending)-1]
	q.pushed--
}

func (q *bookmarkQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		rec := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.write(rec)

		q.mu.Lock()
		q.written++
		close(q.notify)
		q.notify = make(chan struct{})
		q.mu.Unlock()
	}
}

// wait blocks until every write pushed before the call is finished or ctx is done
func (q *bookmarkQueue) wait(ctx context.Context) error {
	q.mu.Lock()
	target := q.pushed
	for q.written < target {
		ch := q.notify
		q.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		q.mu.Lock()
	}
	q.mu.Unlock()
	return nil
}

func (q *bookmarkQueue) write(rec domain.CachedArticle) {
	ctx := context.Background()
	if rec.IsBookmarked {
		if err := q.store.Upsert(ctx, rec); err != nil {
			lgr.Printf("[WARN] failed to bookmark %q: %v", rec.Title, err)
			return
		}
		lgr.Printf("[DEBUG] bookmarked %q", rec.Title)
		return
	}
	if err := q.store.Update(ctx, rec); err != nil {
		lgr.Printf("[WARN] failed to remove bookmark %q: %v", rec.Title, err)
		return
	}
	lgr.Printf("[DEBUG] bookmark removed %q", rec.Title)
}

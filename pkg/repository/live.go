package repository

import (
	"context"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdeck/pkg/broadcast"
	"github.com/umputun/newsdeck/pkg/domain"
)

// WatchAll returns a live sequence of all rows, re-emitted after every change until ctx is done
func (r *NewsRepository) WatchAll(ctx context.Context) broadcast.Observable[[]domain.CachedArticle] {
	return r.watch(ctx, "all news", r.GetAll)
}

// WatchBookmarked returns a live sequence of bookmarked rows, re-emitted after every change until ctx is done
func (r *NewsRepository) WatchBookmarked(ctx context.Context) broadcast.Observable[[]domain.CachedArticle] {
	return r.watch(ctx, "bookmarked news", r.GetBookmarked)
}

func (r *NewsRepository) watch(ctx context.Context, name string,
	query func(context.Context) ([]domain.CachedArticle, error)) broadcast.Observable[[]domain.CachedArticle] {
	ch := broadcast.New[[]domain.CachedArticle]()

	var mu sync.Mutex // one reload at a time, so publishes follow the table state
	reload := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		items, err := query(context.WithoutCancel(ctx))
		if err != nil {
			lgr.Printf("[WARN] failed to reload %s: %v", name, err)
			return
		}
		ch.Publish(items)
	}

	cancel := r.OnChange(reload)
	reload()
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch
}

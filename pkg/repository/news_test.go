package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/domain"
)

func testArticle(i int) domain.CachedArticle {
	return domain.CachedArticle{
		Title:       fmt.Sprintf("Article %d", i),
		PublishedAt: fmt.Sprintf("2025-07-%02dT10:00:00Z", i),
		URLToImage:  fmt.Sprintf("https://example.com/%d.jpg", i),
		URL:         fmt.Sprintf("https://example.com/%d", i),
		SourceName:  "Example",
		Author:      "Reporter",
		Description: fmt.Sprintf("description %d", i),
		Content:     fmt.Sprintf("content %d [+100 chars]", i),
	}
}

func TestNewsRepository_InsertIgnoreAndQueries(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	batch := []domain.CachedArticle{testArticle(1), testArticle(3), testArticle(2)}
	batch[1].IsBookmarked = true
	require.NoError(t, repos.News.InsertIgnore(ctx, batch))

	all, err := repos.News.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Article 3", all[0].Title, "newest first")
	assert.Equal(t, "Article 2", all[1].Title)
	assert.Equal(t, "Article 1", all[2].Title)
	assert.Equal(t, batch[0], all[2], "all fields round-trip")

	bookmarked, err := repos.News.GetBookmarked(ctx)
	require.NoError(t, err)
	require.Len(t, bookmarked, 1)
	assert.Equal(t, "Article 3", bookmarked[0].Title)

	// existing title is skipped, not replaced
	changed := testArticle(3)
	changed.Description = "changed"
	require.NoError(t, repos.News.InsertIgnore(ctx, []domain.CachedArticle{changed}))
	got, err := repos.News.FindByTitle(ctx, "Article 3")
	require.NoError(t, err)
	assert.Equal(t, "description 3", got.Description)
	assert.True(t, got.IsBookmarked)

	require.NoError(t, repos.News.InsertIgnore(ctx, nil))
}

func TestNewsRepository_FindByTitle(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repos.News.FindByTitle(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)

	a := testArticle(1)
	a.PublishedAt = "" // absent publish time stored as NULL
	require.NoError(t, repos.News.Upsert(ctx, a))
	got, err := repos.News.FindByTitle(ctx, a.Title)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	var nullCount int
	require.NoError(t, repos.DB.Get(&nullCount, "SELECT COUNT(*) FROM news WHERE published_at IS NULL"))
	assert.Equal(t, 1, nullCount)
}

func TestNewsRepository_UpsertAndUpdate(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	a := testArticle(5)
	a.IsBookmarked = true
	require.NoError(t, repos.News.Upsert(ctx, a))
	require.NoError(t, repos.News.Upsert(ctx, a)) // idempotent

	var count int
	require.NoError(t, repos.DB.Get(&count, "SELECT COUNT(*) FROM news"))
	assert.Equal(t, 1, count, "no duplicate row")

	exists, err := repos.News.ExistsBookmarked(ctx, a.Title)
	require.NoError(t, err)
	assert.True(t, exists)

	// upsert fully replaces
	a.Author = "someone else"
	require.NoError(t, repos.News.Upsert(ctx, a))
	got, err := repos.News.FindByTitle(ctx, a.Title)
	require.NoError(t, err)
	assert.Equal(t, "someone else", got.Author)

	a.IsBookmarked = false
	require.NoError(t, repos.News.Update(ctx, a))
	exists, err = repos.News.ExistsBookmarked(ctx, a.Title)
	require.NoError(t, err)
	assert.False(t, exists)

	// update of an absent row does nothing
	require.NoError(t, repos.News.Update(ctx, testArticle(9)))
	_, err = repos.News.FindByTitle(ctx, testArticle(9).Title)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewsRepository_DeleteNonBookmarked(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	batch := []domain.CachedArticle{testArticle(1), testArticle(2), testArticle(3)}
	batch[0].IsBookmarked = true
	require.NoError(t, repos.News.InsertIgnore(ctx, batch))
	require.NoError(t, repos.News.DeleteNonBookmarked(ctx))

	all, err := repos.News.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Article 1", all[0].Title)
}

func TestNewsRepository_ReplaceHeadlines(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	// bookmarked X not present in the new batch, and bookmarked Y re-delivered with other fields
	x := testArticle(1)
	x.Title, x.IsBookmarked = "X", true
	y := testArticle(2)
	y.Title, y.IsBookmarked = "Y", true
	old := testArticle(3)
	require.NoError(t, repos.News.InsertIgnore(ctx, []domain.CachedArticle{x, y, old}))

	yAgain := testArticle(2)
	yAgain.Title, yAgain.IsBookmarked, yAgain.Description = "Y", true, "re-fetched"
	batch := []domain.CachedArticle{testArticle(4), testArticle(5), yAgain}
	require.NoError(t, repos.News.ReplaceHeadlines(ctx, batch))

	all, err := repos.News.GetAll(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(all))
	for _, a := range all {
		titles = append(titles, a.Title)
	}
	assert.ElementsMatch(t, []string{"X", "Y", "Article 4", "Article 5"}, titles)

	gotX, err := repos.News.FindByTitle(ctx, "X")
	require.NoError(t, err)
	assert.True(t, gotX.IsBookmarked, "bookmark survives refresh")

	gotY, err := repos.News.FindByTitle(ctx, "Y")
	require.NoError(t, err)
	assert.Equal(t, "description 2", gotY.Description, "bookmarked row not overwritten by re-fetch")

	syncedAt, err := repos.Setting.GetTime(ctx, SettingHeadlinesSyncedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), syncedAt, time.Minute)
}

func TestNewsRepository_ReplaceHeadlinesKeepsTableFlag(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	x := testArticle(1)
	x.Title, x.IsBookmarked = "X", true
	require.NoError(t, repos.News.Upsert(ctx, x))

	// batch built while X was still bookmarked, X is removed before the replace commits
	x.IsBookmarked = false
	require.NoError(t, repos.News.Update(ctx, x))

	staleX := x
	staleX.IsBookmarked = true
	fresh := testArticle(2)
	fresh.IsBookmarked = true // no row for it, the flag is not trusted
	require.NoError(t, repos.News.ReplaceHeadlines(ctx, []domain.CachedArticle{staleX, fresh}))

	gotX, err := repos.News.FindByTitle(ctx, "X")
	require.NoError(t, err)
	assert.False(t, gotX.IsBookmarked, "removed bookmark not restored")

	gotFresh, err := repos.News.FindByTitle(ctx, "Article 2")
	require.NoError(t, err)
	assert.False(t, gotFresh.IsBookmarked)

	bookmarked, err := repos.News.GetBookmarked(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookmarked)

	// bookmark set after the replace stays
	fresh.IsBookmarked = true
	require.NoError(t, repos.News.Upsert(ctx, fresh))
	require.NoError(t, repos.News.ReplaceHeadlines(ctx, []domain.CachedArticle{testArticle(2)}))
	gotFresh, err = repos.News.FindByTitle(ctx, "Article 2")
	require.NoError(t, err)
	assert.True(t, gotFresh.IsBookmarked)
}

func TestNewsRepository_ConcurrentBookmarkAndReplace(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			a := testArticle(100 + i)
			a.IsBookmarked = true
			assert.NoError(t, repos.News.Upsert(ctx, a))
		}(i)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repos.News.ReplaceHeadlines(ctx, []domain.CachedArticle{testArticle(i), testArticle(100 + i)}))
		}(i)
	}
	wg.Wait()

	bookmarked, err := repos.News.GetBookmarked(ctx)
	require.NoError(t, err)
	assert.Len(t, bookmarked, 10, "no bookmark lost to concurrent replace")
}

func TestNewsRepository_Watch(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live := repos.News.WatchBookmarked(ctx)
	initial, ok := live.Latest()
	require.True(t, ok, "initial query published on watch")
	assert.Empty(t, initial)

	a := testArticle(1)
	a.IsBookmarked = true
	require.NoError(t, repos.News.Upsert(ctx, a))
	got, ok := live.Latest()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Article 1", got[0].Title)

	all := repos.News.WatchAll(ctx)
	require.NoError(t, repos.News.InsertIgnore(ctx, []domain.CachedArticle{testArticle(2)}))
	gotAll, _ := all.Latest()
	assert.Len(t, gotAll, 2)
	gotBookmarked, _ := live.Latest()
	assert.Len(t, gotBookmarked, 1)

	a.IsBookmarked = false
	require.NoError(t, repos.News.Update(ctx, a))
	gotBookmarked, _ = live.Latest()
	assert.Empty(t, gotBookmarked)

	cancel()
	require.Eventually(t, func() bool {
		repos.News.mu.Lock()
		defer repos.News.mu.Unlock()
		return len(repos.News.listeners) == 0
	}, time.Second, 5*time.Millisecond)
}

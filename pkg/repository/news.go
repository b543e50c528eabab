package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdeck/pkg/domain"
)

// NewsRepository handles the news table: headline articles and bookmarks
type NewsRepository struct {
	db *sqlx.DB

	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// newsSQL represents a news row for SQL operations
type newsSQL struct {
	Title        string         `db:"title"`
	PublishedAt  sql.NullString `db:"published_at"`
	URLToImage   string         `db:"url_to_image"`
	URL          string         `db:"url"`
	SourceName   string         `db:"source_name"`
	Author       string         `db:"author"`
	Description  string         `db:"description"`
	Content      string         `db:"content"`
	IsBookmarked bool           `db:"is_bookmarked"`
}

const newsColumns = `title, published_at, url_to_image, url, source_name, author, description, content, is_bookmarked`

const insertIgnoreQuery = `
	INSERT OR IGNORE INTO news (` + newsColumns + `)
	VALUES (:title, :published_at, :url_to_image, :url, :source_name, :author, :description, :content, :is_bookmarked)
`

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db, listeners: map[int]func(){}}
}

// GetAll returns all rows ordered by publish time, newest first
func (r *NewsRepository) GetAll(ctx context.Context) ([]domain.CachedArticle, error) {
	var rows []newsSQL
	query := `SELECT ` + newsColumns + ` FROM news ORDER BY published_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get all news: %w", err)
	}
	return toDomainList(rows), nil
}

// GetBookmarked returns bookmarked rows ordered by publish time, newest first
func (r *NewsRepository) GetBookmarked(ctx context.Context) ([]domain.CachedArticle, error) {
	var rows []newsSQL
	query := `SELECT ` + newsColumns + ` FROM news WHERE is_bookmarked = 1 ORDER BY published_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get bookmarked news: %w", err)
	}
	return toDomainList(rows), nil
}

// FindByTitle returns the row with the given title or domain.ErrNotFound
func (r *NewsRepository) FindByTitle(ctx context.Context, title string) (domain.CachedArticle, error) {
	var row newsSQL
	query := `SELECT ` + newsColumns + ` FROM news WHERE title = ? LIMIT 1`
	err := r.db.GetContext(ctx, &row, query, title)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CachedArticle{}, fmt.Errorf("find news %q: %w", title, domain.ErrNotFound)
	}
	if err != nil {
		return domain.CachedArticle{}, fmt.Errorf("find news: %w", err)
	}
	return row.toDomain(), nil
}

// ExistsBookmarked checks if a bookmarked row with the title exists
func (r *NewsRepository) ExistsBookmarked(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM news WHERE title = ? AND is_bookmarked = 1)", title)
	if err != nil {
		return false, fmt.Errorf("check bookmarked: %w", err)
	}
	return exists, nil
}

// InsertIgnore inserts a batch in one transaction, rows with an existing title are skipped
func (r *NewsRepository) InsertIgnore(ctx context.Context, batch []domain.CachedArticle) error {
	if len(batch) == 0 {
		return nil
	}
	err := withRetry(ctx, "insert news", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if err := insertIgnore(ctx, tx, batch); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return err
	}
	r.changed()
	return nil
}

// Upsert inserts the record or fully replaces the existing row with the same title
func (r *NewsRepository) Upsert(ctx context.Context, a domain.CachedArticle) error {
	query := `
		INSERT INTO news (` + newsColumns + `)
		VALUES (:title, :published_at, :url_to_image, :url, :source_name, :author, :description, :content, :is_bookmarked)
		ON CONFLICT(title) DO UPDATE SET
			published_at = excluded.published_at,
			url_to_image = excluded.url_to_image,
			url = excluded.url,
			source_name = excluded.source_name,
			author = excluded.author,
			description = excluded.description,
			content = excluded.content,
			is_bookmarked = excluded.is_bookmarked,
			updated_at = CURRENT_TIMESTAMP
	`
	err := withRetry(ctx, "upsert news", func() error {
		_, err := r.db.NamedExecContext(ctx, query, fromDomain(a))
		return err
	})
	if err != nil {
		return err
	}
	r.changed()
	return nil
}

// Update rewrites an existing row by title. Updating an absent row is a no-op.
func (r *NewsRepository) Update(ctx context.Context, a domain.CachedArticle) error {
	query := `
		UPDATE news SET
			published_at = :published_at,
			url_to_image = :url_to_image,
			url = :url,
			source_name = :source_name,
			author = :author,
			description = :description,
			content = :content,
			is_bookmarked = :is_bookmarked,
			updated_at = CURRENT_TIMESTAMP
		WHERE title = :title
	`
	err := withRetry(ctx, "update news", func() error {
		_, err := r.db.NamedExecContext(ctx, query, fromDomain(a))
		return err
	})
	if err != nil {
		return err
	}
	r.changed()
	return nil
}

// DeleteNonBookmarked removes all rows which are not bookmarked
func (r *NewsRepository) DeleteNonBookmarked(ctx context.Context) error {
	err := withRetry(ctx, "delete non-bookmarked news", func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM news WHERE is_bookmarked = 0")
		return err
	})
	if err != nil {
		return err
	}
	r.changed()
	return nil
}

// ReplaceHeadlines replaces the non-bookmarked rows with the batch in a single transaction.
// Existing titles (bookmarked rows) are kept as is, new rows are stored non-bookmarked whatever
// the batch flag says, the table owns the bookmark state. Readers never observe an empty table mid-replace.
func (r *NewsRepository) ReplaceHeadlines(ctx context.Context, batch []domain.CachedArticle) error {
	rows := make([]domain.CachedArticle, len(batch))
	for i, a := range batch {
		a.IsBookmarked = false
		rows[i] = a
	}
	err := withRetry(ctx, "replace headlines", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err := tx.ExecContext(ctx, "DELETE FROM news WHERE is_bookmarked = 0"); err != nil {
			return fmt.Errorf("delete non-bookmarked: %w", err)
		}
		if err := insertIgnore(ctx, tx, rows); err != nil {
			return err
		}
		if err := setSetting(ctx, tx, SettingHeadlinesSyncedAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("store sync time: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return err
	}
	r.changed()
	return nil
}

// OnChange registers fn to be called after every committed write to the news table
func (r *NewsRepository) OnChange(fn func()) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *NewsRepository) changed() {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func insertIgnore(ctx context.Context, tx *sqlx.Tx, batch []domain.CachedArticle) error {
	stmt, err := tx.PrepareNamedContext(ctx, insertIgnoreQuery)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range batch {
		if _, err := stmt.ExecContext(ctx, fromDomain(a)); err != nil {
			return fmt.Errorf("insert %q: %w", a.Title, err)
		}
	}
	return nil
}

func fromDomain(a domain.CachedArticle) newsSQL {
	return newsSQL{
		Title:        a.Title,
		PublishedAt:  sql.NullString{String: a.PublishedAt, Valid: a.PublishedAt != ""},
		URLToImage:   a.URLToImage,
		URL:          a.URL,
		SourceName:   a.SourceName,
		Author:       a.Author,
		Description:  a.Description,
		Content:      a.Content,
		IsBookmarked: a.IsBookmarked,
	}
}

func (n newsSQL) toDomain() domain.CachedArticle {
	return domain.CachedArticle{
		Title:        n.Title,
		PublishedAt:  n.PublishedAt.String,
		URLToImage:   n.URLToImage,
		URL:          n.URL,
		SourceName:   n.SourceName,
		Author:       n.Author,
		Description:  n.Description,
		Content:      n.Content,
		IsBookmarked: n.IsBookmarked,
	}
}

func toDomainList(rows []newsSQL) []domain.CachedArticle {
	res := make([]domain.CachedArticle, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res
}

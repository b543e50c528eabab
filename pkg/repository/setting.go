package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SettingHeadlinesSyncedAt keeps the time of the last successful headline replace, RFC3339 UTC
const SettingHeadlinesSyncedAt = "headlines_synced_at"

// SettingRepository handles key-value settings
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value, empty string if not set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	return withRetry(ctx, "set setting", func() error {
		return setSetting(ctx, r.db, key, value)
	})
}

// GetTime reads a time setting, zero time if not set
func (r *SettingRepository) GetTime(ctx context.Context, key string) (time.Time, error) {
	value, err := r.GetSetting(ctx, key)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time setting %s: %w", key, err)
	}
	return ts, nil
}

func setSetting(ctx context.Context, ex sqlx.ExecerContext, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := ex.ExecContext(ctx, query, key, value)
	return err
}

package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// GetTime reads a time stored by SetTime.
func (r *SQLiteRepository) GetTime(ctx context.Context, key string) (*time.Time, error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if raw == nil {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return nil, fmt.Errorf("metadata[%s] is not a timestamp: %w", key, err)
	}
	t = t.UTC()
	return &t, nil
}

// SetTime stores t as RFC 3339 text in UTC.
func (r *SQLiteRepository) SetTime(ctx context.Context, key string, t time.Time) error {
	if err := r.Set(ctx, key, []byte(t.UTC().Format(time.RFC3339Nano))); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

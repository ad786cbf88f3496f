// Package metadata stores small key/value markers next to the pass cache,
// such as the time of the last successful sync.
package metadata

import (
	"context"
	"time"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// GetTime returns nil when key is absent.
	GetTime(ctx context.Context, key string) (*time.Time, error)
	SetTime(ctx context.Context, key string, t time.Time) error
}

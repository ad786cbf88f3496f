package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gateguard/internal/client/migrations"
	"github.com/dmitrijs2005/gateguard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gateguard/internal/client/repositories/passes"
	"github.com/dmitrijs2005/gateguard/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Metadata metadata.Repository
	Passes   passes.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Passes:   passes.NewSQLiteRepository(db),
	}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// DSN builds a modernc.org/sqlite DSN for path. Every pooled connection
// waits up to five seconds on a locked database instead of failing.
func DSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}

// InitDatabase opens the cache database at path, switches it to WAL so
// lookups are not blocked by a running sync, and migrates it.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, err
	}

	if err := dbx.ApplyPragmas(ctx, db, "journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return db, nil
}

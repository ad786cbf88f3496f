package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gateguard/internal/dbx"
	"github.com/dmitrijs2005/gateguard/internal/server/repositories/passes"
	"github.com/dmitrijs2005/gateguard/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Passes(db dbx.DBTX) passes.Repository
}

// Package server wires the pass directory together: PostgreSQL storage and
// migrations, the user and pass services, admin seeding and the gRPC
// endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/server/config"
	"github.com/dmitrijs2005/gateguard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gateguard/internal/server/services"

	gs "github.com/dmitrijs2005/gateguard/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	passService *services.PassService
	server      runner
}

// openDB is a seam for tests.
var openDB = repomanager.OpenPostgres

// NewApp opens and migrates the database, then builds the services and the
// gRPC server. The configured admin account is created if missing.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	app, err := newApp(ctx, c, logger, db, rm)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)
	ps := services.NewPassService(db, rm, logger)

	if c.AdminUsername != "" {
		created, err := us.EnsureAdmin(ctx, c.AdminUsername, c.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		if created {
			logger.Warn(ctx, "Created admin account, change its password", "username", c.AdminUsername)
		}
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: us,
		passService: ps,
		server:      gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ps, c.SecretKey),
	}, nil
}

// Run serves until ctx is cancelled or the server fails.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")
	defer app.logger.Info(ctx, "App stopped")

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		return err
	}
	return nil
}

func (app *App) Close() error {
	return app.db.Close()
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/client"
	"github.com/dmitrijs2005/gateguard/internal/client/config"
	"github.com/dmitrijs2005/gateguard/internal/client/connectivity"
	"github.com/dmitrijs2005/gateguard/internal/client/metrics"
	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/client/services"
	"github.com/dmitrijs2005/gateguard/internal/client/verify"
	"github.com/dmitrijs2005/gateguard/internal/filex"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/netx"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// verifier answers lookups from the local cache.
type verifier interface {
	ByPlate(ctx context.Context, plateAlpha, plateNum string) (models.VerifiedPass, bool)
	ByID(ctx context.Context, id string) (models.VerifiedPass, bool)
	ByQR(ctx context.Context, text string) (verify.QRResult, error)
}

// syncTrigger starts manual syncs and reports connectivity.
type syncTrigger interface {
	SyncNow(ctx context.Context) (services.SyncResult, error)
	IsOnline() bool
}

type App struct {
	config *config.Config
	log    logging.Logger

	db      *sql.DB
	metrics *metrics.Metrics
	probe   *connectivity.ProbeSignal
	monitor *connectivity.Monitor

	authService  services.AuthService
	adminService services.AdminService
	syncService  services.SyncService
	syncer       syncTrigger
	verifier     verifier

	mu      sync.Mutex
	session *services.Session
	mode    Mode

	reader   *bufio.Reader
	out      io.Writer
	location *time.Location
}

// NewApp opens the local cache, connects the directory client and wires the
// sync engine, connectivity monitor and verification facade.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	path, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	m := metrics.New()
	repos := client.NewRepositories(db)

	syncService := services.NewSyncService(apiClient, repos.Passes, repos.Metadata, log, services.WithMetrics(m))

	var (
		signal connectivity.Signal
		probe  *connectivity.ProbeSignal
	)
	if c.OnlineCheckInterval > 0 {
		probe = connectivity.NewProbeSignal(apiClient, c.OnlineCheckInterval, c.ProbeTimeout, log)
		signal = probe
	} else {
		signal = connectivity.NewManualSignal(false)
	}
	monitor := connectivity.NewMonitor(signal, syncService, log, connectivity.WithMonitorMetrics(m))

	verifier := verify.New(repos.Passes, log,
		verify.WithMetrics(m),
		verify.WithCache(c.LookupCacheSize, c.LookupCacheTTL))
	monitor.Subscribe(verifier.OnSync)

	a := &App{
		config:       c,
		log:          log,
		db:           db,
		metrics:      m,
		probe:        probe,
		monitor:      monitor,
		authService:  services.NewAuthService(apiClient, repos.Metadata),
		adminService: services.NewAdminService(apiClient),
		syncService:  syncService,
		syncer:       monitor,
		verifier:     verifier,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}

	return a, nil
}

// Run probes the directory once, starts the background loops and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close(ctx)

	a.printf("GateGuard gate client (type 'help' for commands)\n")

	// The saved token must be back in the client before the first sync.
	if s, err := a.authService.Restore(ctx); err != nil {
		a.log.Warn(ctx, "cannot restore session", "error", err)
	} else if s != nil {
		a.setSession(s)
	}

	if a.probe != nil {
		a.probe.Probe(ctx)
		go a.probe.Run(ctx)
	} else {
		a.log.Warn(ctx, "online checks disabled, working from the local cache only")
	}

	a.monitor.Start(ctx)
	defer a.monitor.Stop()

	if a.config.MetricsAddr != "" {
		go a.serveMetrics(ctx)
	}

	a.setMode(a.currentMode())
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the directory connection and the local database.
func (a *App) Close(ctx context.Context) {
	if a.authService != nil {
		if err := a.authService.Close(ctx); err != nil {
			a.log.Warn(ctx, "closing client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())

	a.log.Info(ctx, "serving metrics", "addr", a.config.MetricsAddr)
	if err := netx.ListenAndServe(ctx, a.config.MetricsAddr, mux); err != nil {
		a.log.Error(ctx, "metrics listener stopped", "error", err)
	}
}

func (a *App) currentMode() Mode {
	if a.syncer != nil && a.syncer.IsOnline() {
		return ModeOnline
	}
	return ModeOffline
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed && a.log != nil {
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) setSession(s *services.Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil
}

func (a *App) getStatus() string {
	a.setMode(a.currentMode())

	a.mu.Lock()
	defer a.mu.Unlock()

	s := string(a.mode)
	if a.session != nil {
		s = a.session.Username + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

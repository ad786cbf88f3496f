// Package services holds the gate device's application services: the sync
// engine that refreshes the local pass cache, and thin wrappers over the
// directory for sign-in and administration.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/metrics"
	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gateguard/internal/client/repositories/passes"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/timex"
	"google.golang.org/protobuf/types/known/structpb"
)

// LastSyncKey is the metadata key of the last successful sync time.
const LastSyncKey = "last_sync_at"

// ErrNoUsableRecords fails a sync whose fetched records were all rejected,
// so a bad batch never empties the cache.
var ErrNoUsableRecords = errors.New("no usable pass records")

// PassSource is the remote read used by a sync.
type PassSource interface {
	ListPasses(ctx context.Context, status string) ([]*structpb.Struct, error)
}

// SyncResult reports one sync run. On failure PassCount is 0 and Err is set.
type SyncResult struct {
	Success   bool
	PassCount int
	Skipped   int
	Err       error
	At        time.Time
}

type SyncService interface {
	// SyncNow replaces the local store with the directory's active passes.
	// Concurrent calls run one after another.
	SyncNow(ctx context.Context) SyncResult

	// HasLocalData reports whether the store holds any pass. Storage errors
	// read as false.
	HasLocalData(ctx context.Context) bool

	// LastSyncTime returns nil if no sync has completed yet.
	LastSyncTime(ctx context.Context) (*time.Time, error)

	// PassCount returns the number of cached passes.
	PassCount(ctx context.Context) (int, error)
}

type syncService struct {
	mu sync.Mutex

	source  PassSource
	passes  passes.Repository
	meta    metadata.Repository
	log     logging.Logger
	metrics *metrics.Metrics
	now     timex.Clock
}

type SyncOption func(*syncService)

// WithClock overrides the clock used for the last-sync marker.
func WithClock(c timex.Clock) SyncOption {
	return func(s *syncService) { s.now = c }
}

// WithMetrics records sync runs on m.
func WithMetrics(m *metrics.Metrics) SyncOption {
	return func(s *syncService) { s.metrics = m }
}

func NewSyncService(source PassSource, passRepo passes.Repository, metaRepo metadata.Repository, log logging.Logger, opts ...SyncOption) SyncService {
	s := &syncService{
		source: source,
		passes: passRepo,
		meta:   metaRepo,
		log:    log.With("module", "sync"),
		now:    timex.SystemClock,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *syncService) SyncNow(ctx context.Context) SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	res := s.run(ctx)
	s.metrics.ObserveSync(res.Success, res.PassCount, res.Skipped, time.Since(started), res.At)

	if res.Success {
		s.log.Info(ctx, "sync finished", "passes", res.PassCount, "skipped", res.Skipped)
	} else {
		s.log.Error(ctx, "sync failed", "error", res.Err)
	}
	return res
}

func (s *syncService) run(ctx context.Context) SyncResult {
	raw, err := s.source.ListPasses(ctx, string(models.StatusActive))
	if err != nil {
		return SyncResult{Err: fmt.Errorf("fetch passes: %w", err), At: s.now()}
	}

	records := make([]models.Pass, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	skipped := 0

	for _, doc := range raw {
		p, err := Normalize(doc)
		if err != nil {
			skipped++
			s.log.Warn(ctx, "skipping malformed pass", "error", err)
			continue
		}
		if _, dup := seen[p.ID]; dup {
			skipped++
			s.log.Warn(ctx, "skipping duplicate pass", "id", p.ID)
			continue
		}
		seen[p.ID] = struct{}{}
		records = append(records, p)
	}

	if len(raw) > 0 && len(records) == 0 {
		return SyncResult{Skipped: skipped, Err: fmt.Errorf("%w: %d rejected", ErrNoUsableRecords, skipped), At: s.now()}
	}

	if err := s.passes.ReplaceAll(ctx, records); err != nil {
		return SyncResult{Skipped: skipped, Err: fmt.Errorf("store passes: %w", err), At: s.now()}
	}

	at := s.now()
	if err := s.meta.SetTime(ctx, LastSyncKey, at); err != nil {
		// The new snapshot is committed; only the marker is stale.
		s.log.Warn(ctx, "failed to record sync time", "error", err)
	}

	return SyncResult{Success: true, PassCount: len(records), Skipped: skipped, At: at}
}

func (s *syncService) HasLocalData(ctx context.Context) bool {
	n, err := s.passes.Count(ctx)
	if err != nil {
		s.log.Warn(ctx, "cannot count cached passes", "error", err)
		return false
	}
	return n > 0
}

func (s *syncService) LastSyncTime(ctx context.Context) (*time.Time, error) {
	return s.meta.GetTime(ctx, LastSyncKey)
}

func (s *syncService) PassCount(ctx context.Context) (int, error) {
	return s.passes.Count(ctx)
}

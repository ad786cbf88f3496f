// Package verify answers gate lookups from the local pass cache. Lookups
// never touch the network; expiry is derived at read time from the cached
// record and the clock.
package verify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/metrics"
	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/client/repositories/passes"
	"github.com/dmitrijs2005/gateguard/internal/client/services"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/qrx"
	"github.com/dmitrijs2005/gateguard/internal/timex"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// QRResult is the outcome of a QR scan. The mismatch flags compare the
// scanned code with the cached record, which is authoritative.
type QRResult struct {
	Payload            qrx.Payload
	Pass               models.VerifiedPass
	Found              bool
	ExpiryHintMismatch bool
	PlateMismatch      bool
}

type Service struct {
	passes  passes.Repository
	log     logging.Logger
	metrics *metrics.Metrics
	now     timex.Clock

	cacheSize int
	cacheTTL  time.Duration
	byID      *expirable.LRU[string, models.Pass]
	byPlate   *expirable.LRU[string, models.Pass]

	// gen counts purges. A record loaded before a purge is not memoized.
	mu  sync.Mutex
	gen uint64
}

type Option func(*Service)

func WithClock(c timex.Clock) Option {
	return func(s *Service) { s.now = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache memoizes up to size stored records per key kind for ttl.
// A size of zero disables the cache.
func WithCache(size int, ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheSize = size
		s.cacheTTL = ttl
	}
}

func New(repo passes.Repository, log logging.Logger, opts ...Option) *Service {
	s := &Service{
		passes: repo,
		log:    log.With("module", "verify"),
		now:    timex.SystemClock,
	}
	for _, o := range opts {
		o(s)
	}
	if s.cacheSize > 0 {
		s.byID = expirable.NewLRU[string, models.Pass](s.cacheSize, nil, s.cacheTTL)
		s.byPlate = expirable.NewLRU[string, models.Pass](s.cacheSize, nil, s.cacheTTL)
	}
	return s
}

// ByPlate finds the pass for a plate. Letters are matched case-insensitively.
func (s *Service) ByPlate(ctx context.Context, plateAlpha, plateNum string) (models.VerifiedPass, bool) {
	alpha := strings.ToUpper(strings.TrimSpace(plateAlpha))
	num := strings.TrimSpace(plateNum)

	p, ok := s.lookup(ctx, metrics.LookupPlate, s.byPlate, plateKey(alpha, num), func() (*models.Pass, error) {
		return s.passes.GetByPlate(ctx, alpha, num)
	})
	if !ok {
		return models.VerifiedPass{}, false
	}
	return models.Verify(p, s.now()), true
}

// ByID finds the pass with the given id.
func (s *Service) ByID(ctx context.Context, id string) (models.VerifiedPass, bool) {
	p, ok := s.findByID(ctx, metrics.LookupID, strings.TrimSpace(id))
	if !ok {
		return models.VerifiedPass{}, false
	}
	return models.Verify(p, s.now()), true
}

// ByQR parses scanned QR text and looks the pass up by its id. An unreadable
// code is an error wrapping qrx.ErrInvalidPayload; an unknown pass is
// reported with Found unset.
func (s *Service) ByQR(ctx context.Context, text string) (QRResult, error) {
	payload, err := qrx.Parse(text)
	if err != nil {
		s.metrics.ObserveLookup(metrics.LookupQR, metrics.OutcomeError)
		return QRResult{}, err
	}

	res := QRResult{Payload: payload}
	p, ok := s.findByID(ctx, metrics.LookupQR, payload.PassID)
	if !ok {
		return res, nil
	}

	res.Found = true
	res.Pass = models.Verify(p, s.now())
	res.ExpiryHintMismatch = payload.HasExpiry() && payload.Exp != p.ExpiresAt.Unix()
	res.PlateMismatch = (payload.PlateAlpha != "" && payload.PlateAlpha != p.PlateAlpha) ||
		(payload.PlateNum != "" && payload.PlateNum != p.PlateNum)

	if res.ExpiryHintMismatch || res.PlateMismatch {
		s.log.Info(ctx, "QR code differs from cached pass", "id", p.ID,
			"expiry_mismatch", res.ExpiryHintMismatch, "plate_mismatch", res.PlateMismatch)
	}
	return res, nil
}

// Purge drops every memoized record.
func (s *Service) Purge() {
	if s.byID == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.byID.Purge()
	s.byPlate.Purge()
}

func (s *Service) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// remember memoizes p unless the cache was purged since gen was read.
func (s *Service) remember(cache *expirable.LRU[string, models.Pass], gen uint64, key string, p models.Pass) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	cache.Add(key, p)
}

// OnSync purges the memoized records after a successful sync. It is meant to
// be subscribed to the connectivity monitor.
func (s *Service) OnSync(res services.SyncResult) {
	if res.Success {
		s.Purge()
	}
}

func (s *Service) findByID(ctx context.Context, kind, id string) (models.Pass, bool) {
	return s.lookup(ctx, kind, s.byID, id, func() (*models.Pass, error) {
		return s.passes.GetByID(ctx, id)
	})
}

func (s *Service) lookup(ctx context.Context, kind string, cache *expirable.LRU[string, models.Pass], key string, load func() (*models.Pass, error)) (models.Pass, bool) {
	var gen uint64
	if cache != nil {
		if p, ok := cache.Get(key); ok {
			s.metrics.ObserveLookup(kind, metrics.OutcomeFound)
			return p, true
		}
		gen = s.generation()
	}

	p, err := load()
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorNotFound):
		s.metrics.ObserveLookup(kind, metrics.OutcomeNotFound)
		return models.Pass{}, false
	default:
		s.log.Warn(ctx, "lookup failed, reporting not found", "kind", kind, "key", key, "error", err)
		s.metrics.ObserveLookup(kind, metrics.OutcomeError)
		return models.Pass{}, false
	}

	if cache != nil {
		s.remember(cache, gen, key, *p)
	}
	s.metrics.ObserveLookup(kind, metrics.OutcomeFound)
	return *p, true
}

func plateKey(alpha, num string) string {
	return alpha + " " + num
}

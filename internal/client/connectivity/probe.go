package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/logging"
)

// Pinger checks that the directory answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeSignal derives connectivity from periodic pings. Only real state
// changes are published.
type ProbeSignal struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	mu     sync.RWMutex
	online bool
	subs   listeners[bool]
}

func NewProbeSignal(p Pinger, interval, timeout time.Duration, log logging.Logger) *ProbeSignal {
	return &ProbeSignal{
		pinger:   p,
		interval: interval,
		timeout:  timeout,
		log:      log.With("module", "probe"),
	}
}

func (p *ProbeSignal) IsOnline() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online
}

func (p *ProbeSignal) Subscribe(fn func(online bool)) *Subscription {
	return p.subs.add(fn)
}

// Probe pings once, records the outcome and returns it.
func (p *ProbeSignal) Probe(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	err := p.pinger.Ping(pctx)
	cancel()

	online := err == nil
	if err != nil {
		p.log.Debug(ctx, "ping failed", "error", err)
	}

	p.mu.Lock()
	changed := p.online != online
	p.online = online
	p.mu.Unlock()

	if changed {
		p.subs.notify(online)
	}
	return online
}

// Run probes every interval until ctx is done.
func (p *ProbeSignal) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

package connectivity

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gateguard/internal/client/services"
)

// fakeSignal publishes whatever it is told, duplicates included.
type fakeSignal struct {
	mu     sync.Mutex
	online bool
	subs   listeners[bool]
}

func (s *fakeSignal) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *fakeSignal) Subscribe(fn func(bool)) *Subscription { return s.subs.add(fn) }

func (s *fakeSignal) emit(online bool) {
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
	s.subs.notify(online)
}

type fakeSyncer struct {
	mu      sync.Mutex
	hasData bool
	calls   int
	result  services.SyncResult
}

func (f *fakeSyncer) SyncNow(ctx context.Context) services.SyncResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.hasData = true
	return f.result
}

func (f *fakeSyncer) HasLocalData(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasData
}

func (f *fakeSyncer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePinger struct {
	mu          sync.Mutex
	err         error
	calls       int
	hadDeadline bool
}

func (p *fakePinger) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	_, p.hadDeadline = ctx.Deadline()
	return p.err
}

func (p *fakePinger) set(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *fakePinger) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

package connectivity

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gateguard/internal/client/metrics"
	"github.com/dmitrijs2005/gateguard/internal/client/services"
	"github.com/dmitrijs2005/gateguard/internal/logging"
)

// ErrOffline is returned by a manual sync while the directory is unreachable.
var ErrOffline = errors.New("offline: directory unreachable")

// Syncer is the part of the sync engine the monitor drives.
type Syncer interface {
	SyncNow(ctx context.Context) services.SyncResult
	HasLocalData(ctx context.Context) bool
}

type eventKind int

const (
	eventStatus eventKind = iota
	eventBootstrap
)

type event struct {
	kind   eventKind
	online bool
}

// Monitor reacts to connectivity changes. Events are handled one at a time
// on a single goroutine, so a reconnect sync never overlaps the bootstrap
// sync.
type Monitor struct {
	signal  Signal
	syncer  Syncer
	log     logging.Logger
	metrics *metrics.Metrics

	results listeners[services.SyncResult]

	qmu   sync.Mutex
	queue []event
	wake  chan struct{}

	mu      sync.Mutex
	online  bool
	started bool
	stopped bool
	sub     *Subscription
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type MonitorOption func(*Monitor)

func WithMonitorMetrics(m *metrics.Metrics) MonitorOption {
	return func(mon *Monitor) { mon.metrics = m }
}

func NewMonitor(signal Signal, syncer Syncer, log logging.Logger, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		signal: signal,
		syncer: syncer,
		log:    log.With("module", "connectivity"),
		wake:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start subscribes to the signal and begins handling events. When the device
// starts online with an empty cache one bootstrap sync is scheduled.
// Calling Start twice has no effect.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	// Subscribe before reading the state so no transition falls in between.
	m.sub = m.signal.Subscribe(func(on bool) {
		m.enqueue(event{kind: eventStatus, online: on})
	})
	online := m.signal.IsOnline()
	m.online = online
	m.mu.Unlock()

	m.metrics.SetOnline(online)

	if online && !m.syncer.HasLocalData(ctx) {
		m.log.Info(ctx, "cache is empty, scheduling initial sync")
		m.enqueue(event{kind: eventBootstrap})
	}

	m.wg.Add(1)
	go m.loop(ctx)
}

// Stop unsubscribes from the signal and waits for the event goroutine.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.started || m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	sub, cancel := m.sub, m.cancel
	m.mu.Unlock()

	sub.Unsubscribe()
	cancel()
	m.wg.Wait()
}

// IsOnline reports the state most recently handled by the monitor.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers fn for the result of every sync the monitor runs,
// including manual ones.
func (m *Monitor) Subscribe(fn func(services.SyncResult)) *Subscription {
	return m.results.add(fn)
}

// SyncNow runs a sync on request. It fails with ErrOffline when the signal
// reports the directory as unreachable.
func (m *Monitor) SyncNow(ctx context.Context) (services.SyncResult, error) {
	if !m.signal.IsOnline() {
		return services.SyncResult{}, ErrOffline
	}
	return m.sync(ctx, "manual"), nil
}

func (m *Monitor) enqueue(ev event) {
	m.qmu.Lock()
	m.queue = append(m.queue, ev)
	m.qmu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Monitor) drain() []event {
	m.qmu.Lock()
	defer m.qmu.Unlock()
	evs := m.queue
	m.queue = nil
	return evs
}

func (m *Monitor) loop(ctx context.Context) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.wake:
			for _, ev := range m.drain() {
				if ctx.Err() != nil {
					return
				}
				m.handle(ctx, ev)
			}
		}
	}
}

func (m *Monitor) handle(ctx context.Context, ev event) {
	switch ev.kind {
	case eventBootstrap:
		if m.IsOnline() {
			m.sync(ctx, "bootstrap")
		}
	case eventStatus:
		m.mu.Lock()
		prev := m.online
		m.online = ev.online
		m.mu.Unlock()

		if prev == ev.online {
			return
		}
		m.metrics.SetOnline(ev.online)

		if ev.online {
			m.log.Info(ctx, "connection restored")
			m.sync(ctx, "reconnect")
		} else {
			m.log.Warn(ctx, "connection lost, serving cached data")
		}
	}
}

func (m *Monitor) sync(ctx context.Context, reason string) services.SyncResult {
	m.log.Debug(ctx, "sync started", "reason", reason)
	res := m.syncer.SyncNow(ctx)
	m.results.notify(res)
	return res
}

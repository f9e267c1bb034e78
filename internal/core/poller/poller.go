// Package poller periodically lists containers and publishes snapshots.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/melih/lighthouse-tray/internal/core/domain"
	"github.com/melih/lighthouse-tray/internal/core/ports"
)

const (
	// DefaultInterval matches the one-second refresh of the tray menu.
	DefaultInterval = time.Second
	// DefaultQueryTimeout bounds a single list call.
	DefaultQueryTimeout = 5 * time.Second
)

// Poller owns the polling schedule. Run drives it; Refresh and SetInterval
// may be called from any goroutine.
type Poller struct {
	runtime      ports.ContainerRuntime
	interval     time.Duration
	queryTimeout time.Duration
	now          func() time.Time

	refreshCh  chan struct{}
	intervalCh chan time.Duration

	mu     sync.RWMutex
	latest domain.Snapshot
	polled bool
	subs   []chan domain.Snapshot
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the initial poll interval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithQueryTimeout bounds each ListAll call.
func WithQueryTimeout(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.queryTimeout = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// New creates a poller over the given runtime.
func New(runtime ports.ContainerRuntime, opts ...Option) *Poller {
	p := &Poller{
		runtime:      runtime,
		interval:     DefaultInterval,
		queryTimeout: DefaultQueryTimeout,
		now:          time.Now,
		refreshCh:    make(chan struct{}, 1),
		intervalCh:   make(chan time.Duration, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Snapshot queries the runtime once. On failure it returns an empty slice and
// an error wrapping domain.ErrRuntimeUnavailable.
func (p *Poller) Snapshot(ctx context.Context) ([]domain.ContainerSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	containers, err := p.runtime.ListAll(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrRuntimeUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrRuntimeUnavailable, err)
		}
		return []domain.ContainerSummary{}, err
	}

	out := make([]domain.ContainerSummary, 0, len(containers))
	for _, c := range containers {
		// A listed container exists, so it is either running or not.
		if c.State != domain.StateRunning {
			c.State = domain.StateStopped
		}
		out = append(out, c)
	}
	return out, nil
}

// Poll takes a snapshot, stores it as Latest and hands it to subscribers.
func (p *Poller) Poll(ctx context.Context) domain.Snapshot {
	containers, err := p.Snapshot(ctx)
	snap := domain.Snapshot{Containers: containers, Err: err, TakenAt: p.now()}

	p.mu.Lock()
	prev, hadPrev := p.latest, p.polled
	p.latest = snap
	p.polled = true
	subs := append([]chan domain.Snapshot(nil), p.subs...)
	p.mu.Unlock()

	p.logChanges(prev, hadPrev, snap)

	for _, ch := range subs {
		publish(ch, snap)
	}
	return snap
}

// publish delivers snap, replacing an unread older snapshot if necessary.
func publish(ch chan domain.Snapshot, snap domain.Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Latest returns the most recent snapshot. Before the first poll it is empty.
func (p *Poller) Latest() domain.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// Subscribe returns a channel that always holds the newest unread snapshot.
// The channel is never closed.
func (p *Poller) Subscribe() <-chan domain.Snapshot {
	ch := make(chan domain.Snapshot, 1)
	p.mu.Lock()
	p.subs = append(p.subs, ch)
	p.mu.Unlock()
	return ch
}

// Refresh requests one extra poll. It never blocks; pending requests coalesce.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// SetInterval changes the poll cadence of a running poller.
func (p *Poller) SetInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", d)
	}
	for {
		select {
		case p.intervalCh <- d:
			return nil
		default:
		}
		select {
		case <-p.intervalCh:
		default:
		}
	}
}

// Run polls immediately, then on every tick and on every Refresh, until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Debug("Poller started.", "interval", p.interval)
	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx)
		case <-p.refreshCh:
			p.Poll(ctx)
		case d := <-p.intervalCh:
			if d != p.interval {
				slog.Info("Poll interval changed.", "from", p.interval, "to", d)
				p.interval = d
				ticker.Reset(d)
			}
		}
	}
}

func (p *Poller) logChanges(prev domain.Snapshot, hadPrev bool, next domain.Snapshot) {
	switch {
	case next.Degraded() && (!hadPrev || !prev.Degraded()):
		slog.Warn("Container runtime unavailable.", "err", next.Err)
		return
	case next.Degraded():
		return
	case hadPrev && prev.Degraded():
		slog.Info("Container runtime reachable again.", "containers", len(next.Containers))
	}
	if !hadPrev {
		return
	}
	for _, tr := range Diff(prev.Containers, next.Containers) {
		slog.Debug("Container state changed.", "container", domain.ShortID(tr.ID), "name", tr.Name, "from", tr.From, "to", tr.To)
	}
}

// Package dispatcher runs user-triggered start/stop actions against the
// container runtime, one background goroutine per action, at most one
// action per container at a time.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/melih/lighthouse-tray/internal/core/domain"
	"github.com/melih/lighthouse-tray/internal/core/ports"
)

// DefaultActionTimeout bounds the fetch plus start/stop of one action.
const DefaultActionTimeout = 30 * time.Second

// Dispatcher toggles containers without blocking the caller.
type Dispatcher struct {
	runtime   ports.ContainerRuntime
	refresher ports.Refresher
	timeout   time.Duration
	hooks     []func(domain.ActionResult)
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[string]string // container id -> request id

	wg sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithActionTimeout bounds each action.
func WithActionTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithResultHook registers a function called with every result, after the
// refresh request. Hooks run on the action's goroutine.
func WithResultHook(fn func(domain.ActionResult)) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.hooks = append(d.hooks, fn)
		}
	}
}

// New creates a dispatcher. refresher may be nil.
func New(runtime ports.ContainerRuntime, refresher ports.Refresher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runtime:   runtime,
		refresher: refresher,
		timeout:   DefaultActionTimeout,
		now:       time.Now,
		inFlight:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Toggle starts a stopped container or stops a running one in the background.
// The returned channel receives exactly one result and is then closed. If an
// action for the same id is still pending, Toggle returns domain.ErrActionInFlight
// and nothing reaches the runtime.
func (d *Dispatcher) Toggle(id string) (<-chan domain.ActionResult, error) {
	req, err := d.acquire(id)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.ActionResult, 1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(out)
		out <- d.run(context.Background(), req)
	}()
	return out, nil
}

// Do runs one toggle on the calling goroutine, under the same in-flight guard.
func (d *Dispatcher) Do(ctx context.Context, id string) domain.ActionResult {
	req, err := d.acquire(id)
	if err != nil {
		return domain.Failed("", id, id, err)
	}
	return d.run(ctx, req)
}

// InFlight reports whether an action for id is pending.
func (d *Dispatcher) InFlight(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.inFlight[id]
	return ok
}

// Wait blocks until every action started with Toggle has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) acquire(id string) (domain.ActionRequest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if pending, ok := d.inFlight[id]; ok {
		slog.Debug("Toggle rejected, action pending.", "container", domain.ShortID(id), "request", pending)
		return domain.ActionRequest{}, fmt.Errorf("container %s: %w", id, domain.ErrActionInFlight)
	}
	req := domain.ActionRequest{
		ID:          uuid.NewString(),
		ContainerID: id,
		RequestedAt: d.now(),
	}
	d.inFlight[id] = req.ID
	return req, nil
}

func (d *Dispatcher) release(id string) {
	d.mu.Lock()
	delete(d.inFlight, id)
	d.mu.Unlock()
}

// run executes req, releases the guard, then signals a refresh and the hooks.
func (d *Dispatcher) run(ctx context.Context, req domain.ActionRequest) domain.ActionResult {
	res := d.execute(ctx, req)
	d.release(req.ContainerID)

	if res.Succeeded() {
		slog.Info("Container action completed.", "container", domain.ShortID(req.ContainerID), "name", res.Name, "outcome", res.Outcome, "request", req.ID)
	} else {
		slog.Warn("Container action failed.", "container", domain.ShortID(req.ContainerID), "request", req.ID, "err", res.Err)
	}

	if d.refresher != nil {
		d.refresher.Refresh()
	}
	for _, hook := range d.hooks {
		callHook(hook, res)
	}
	return res
}

// callHook runs one result hook; a panic is logged and does not reach the caller.
func callHook(hook func(domain.ActionResult), res domain.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Result hook panicked.", "container", domain.ShortID(res.ContainerID), "request", res.RequestID, "panic", r)
		}
	}()
	hook(res)
}

func (d *Dispatcher) execute(ctx context.Context, req domain.ActionRequest) (res domain.ActionResult) {
	label := req.ContainerID
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failed(req.ID, req.ContainerID, label, fmt.Errorf("%w: %v", domain.ErrActionFailed, r))
		}
	}()

	if req.ContainerID == "" {
		return domain.Failed(req.ID, req.ContainerID, label, fmt.Errorf("empty container id: %w", domain.ErrContainerNotFound))
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// Act on the current state, not on the last snapshot.
	current, err := d.runtime.Get(ctx, req.ContainerID)
	if err != nil {
		return domain.Failed(req.ID, req.ContainerID, label, fetchError(err))
	}
	label = current.DisplayName()

	action, ok := domain.ActionFor(current.State)
	if !ok {
		return domain.Failed(req.ID, req.ContainerID, label, fmt.Errorf("state %s: %w", current.State, domain.ErrContainerNotFound))
	}
	req.Action = action

	slog.Debug("Switching container.", "container", domain.ShortID(req.ContainerID), "name", label, "action", action, "request", req.ID)
	switch action {
	case domain.ActionStop:
		err = d.runtime.Stop(ctx, req.ContainerID)
	default:
		err = d.runtime.Start(ctx, req.ContainerID)
	}
	if err != nil {
		return domain.Failed(req.ID, req.ContainerID, label, actionError(err))
	}
	return domain.Completed(req, label)
}

// fetchError keeps typed runtime errors and tags anything else as unavailable.
func fetchError(err error) error {
	if errors.Is(err, domain.ErrContainerNotFound) || errors.Is(err, domain.ErrRuntimeUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrRuntimeUnavailable, err)
}

func actionError(err error) error {
	for _, kind := range []error{domain.ErrActionFailed, domain.ErrContainerNotFound, domain.ErrRuntimeUnavailable} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrActionFailed, err)
}

// Package fake provides an in-memory container runtime for tests.
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/melih/lighthouse-tray/internal/core/domain"
	"github.com/melih/lighthouse-tray/internal/core/ports"
)

var _ ports.ContainerRuntime = (*Runtime)(nil)

// Runtime is an in-memory implementation of ports.ContainerRuntime. Containers
// are listed in insertion order.
type Runtime struct {
	CallRecorder

	mu          sync.Mutex
	containers  []domain.ContainerSummary
	unavailable bool

	// Optional hooks run before the default behavior; a non-nil error is returned as-is.
	ListErr  func(ctx context.Context) error
	GetErr   func(ctx context.Context, id string) error
	StartErr func(ctx context.Context, id string) error
	StopErr  func(ctx context.Context, id string) error
}

// NewRuntime creates a reachable runtime holding the given containers.
func NewRuntime(containers ...domain.ContainerSummary) *Runtime {
	return &Runtime{containers: append([]domain.ContainerSummary(nil), containers...)}
}

// Add appends a container.
func (r *Runtime) Add(c domain.ContainerSummary) {
	r.mu.Lock()
	r.containers = append(r.containers, c)
	r.mu.Unlock()
}

// Remove deletes a container, simulating removal outside the tray.
func (r *Runtime) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.containers {
		if c.ID == id {
			r.containers = append(r.containers[:i], r.containers[i+1:]...)
			return
		}
	}
}

// SetUnavailable makes every call fail with domain.ErrRuntimeUnavailable.
func (r *Runtime) SetUnavailable(v bool) {
	r.mu.Lock()
	r.unavailable = v
	r.mu.Unlock()
}

func (r *Runtime) ListAll(ctx context.Context) ([]domain.ContainerSummary, error) {
	r.record(OpListAll, "")
	if r.ListErr != nil {
		if err := r.ListErr(ctx); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unavailable {
		return nil, fmt.Errorf("list containers: %w", domain.ErrRuntimeUnavailable)
	}
	return append([]domain.ContainerSummary(nil), r.containers...), nil
}

func (r *Runtime) Get(ctx context.Context, id string) (domain.ContainerSummary, error) {
	r.record(OpGet, id)
	if r.GetErr != nil {
		if err := r.GetErr(ctx, id); err != nil {
			return domain.ContainerSummary{}, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unavailable {
		return domain.ContainerSummary{}, fmt.Errorf("inspect container %s: %w", id, domain.ErrRuntimeUnavailable)
	}
	i := r.indexLocked(id)
	if i < 0 {
		return domain.ContainerSummary{}, fmt.Errorf("inspect container %s: %w", id, domain.ErrContainerNotFound)
	}
	return r.containers[i], nil
}

func (r *Runtime) Start(ctx context.Context, id string) error {
	r.record(OpStart, id)
	if r.StartErr != nil {
		if err := r.StartErr(ctx, id); err != nil {
			return err
		}
	}
	return r.setState(id, domain.StateRunning)
}

func (r *Runtime) Stop(ctx context.Context, id string) error {
	r.record(OpStop, id)
	if r.StopErr != nil {
		if err := r.StopErr(ctx, id); err != nil {
			return err
		}
	}
	return r.setState(id, domain.StateStopped)
}

func (r *Runtime) setState(id string, s domain.ContainerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unavailable {
		return fmt.Errorf("container %s: %w", id, domain.ErrRuntimeUnavailable)
	}
	i := r.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("container %s: %w", id, domain.ErrContainerNotFound)
	}
	r.containers[i].State = s
	return nil
}

func (r *Runtime) indexLocked(id string) int {
	for i, c := range r.containers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

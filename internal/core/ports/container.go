package ports

import (
	"context"

	"github.com/melih/lighthouse-tray/internal/core/domain"
)

// ContainerRuntime is the narrow slice of a container engine the core needs.
// This interface allows us to switch between Docker, Podman, or a fake in tests
// without changing the poller or dispatcher.
//
// Implementations wrap domain.ErrRuntimeUnavailable when the engine cannot be
// reached, domain.ErrContainerNotFound for unknown ids and
// domain.ErrActionFailed when Start or Stop is refused.
type ContainerRuntime interface {
	// ListAll returns every container, stopped ones included, in runtime order.
	ListAll(ctx context.Context) ([]domain.ContainerSummary, error)
	// Get returns the current state of a single container.
	Get(ctx context.Context, id string) (domain.ContainerSummary, error)
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
}

// Refresher asks the snapshot source for one extra, out-of-interval poll.
type Refresher interface {
	Refresh()
}

// Toggler is the action entry point used by presentation adapters.
type Toggler interface {
	Toggle(id string) (<-chan domain.ActionResult, error)
}

// SnapshotSource exposes the most recent snapshot to presentation adapters.
type SnapshotSource interface {
	Latest() domain.Snapshot
}

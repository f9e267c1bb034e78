package docker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/melih/lighthouse-tray/internal/core/domain"
)

// DefaultStopTimeout is the grace period, in seconds, before docker kills a container.
const DefaultStopTimeout = 10

// Adapter implements ports.ContainerRuntime using Docker SDK
type Adapter struct {
	cli         client.APIClient
	stopTimeout int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithStopTimeout sets the graceful stop timeout in seconds.
func WithStopTimeout(seconds int) Option {
	return func(a *Adapter) {
		if seconds > 0 {
			a.stopTimeout = seconds
		}
	}
}

// NewAdapter creates a new Docker adapter instance. An empty host uses
// DOCKER_HOST and the other standard environment variables.
func NewAdapter(host string, opts ...Option) (*Adapter, error) {
	clientOpts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		clientOpts = append(clientOpts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return NewWithClient(cli, opts...), nil
}

// NewWithClient wraps an existing API client.
func NewWithClient(cli client.APIClient, opts ...Option) *Adapter {
	a := &Adapter{cli: cli, stopTimeout: DefaultStopTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ListAll returns all containers, including stopped ones, in the order docker reports them.
func (a *Adapter) ListAll(ctx context.Context) ([]domain.ContainerSummary, error) {
	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", classify(err, domain.ErrRuntimeUnavailable))
	}

	result := make([]domain.ContainerSummary, 0, len(containers))
	for _, c := range containers {
		// Use the first name if available, remove slash
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}

		result = append(result, domain.ContainerSummary{
			ID:     c.ID,
			Name:   name,
			Image:  c.Image,
			Status: c.Status,
			State:  domain.StateFromRuntime(string(c.State)),
		})
	}
	return result, nil
}

// Get inspects a single container.
func (a *Adapter) Get(ctx context.Context, id string) (domain.ContainerSummary, error) {
	info, err := a.cli.ContainerInspect(ctx, id)
	if err != nil {
		return domain.ContainerSummary{}, fmt.Errorf("inspect container %s: %w", id, classify(err, domain.ErrRuntimeUnavailable))
	}
	if info.ContainerJSONBase == nil {
		return domain.ContainerSummary{}, fmt.Errorf("inspect container %s: %w", id, domain.ErrContainerNotFound)
	}

	summary := domain.ContainerSummary{
		ID:    info.ID,
		Name:  strings.TrimPrefix(info.Name, "/"),
		State: domain.StateStopped,
	}
	if summary.ID == "" {
		summary.ID = id
	}
	if info.Config != nil {
		summary.Image = info.Config.Image
	}
	if info.State != nil {
		// Same mapping as ListAll: Running is also true while paused or restarting.
		summary.Status = string(info.State.Status)
		summary.State = domain.StateFromRuntime(string(info.State.Status))
	}
	return summary, nil
}

// Start starts an existing container.
func (a *Adapter) Start(ctx context.Context, id string) error {
	if err := a.cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container %s: %w", id, classify(err, domain.ErrActionFailed))
	}
	return nil
}

// Stop stops a running container, giving it stopTimeout seconds to exit.
func (a *Adapter) Stop(ctx context.Context, id string) error {
	timeout := a.stopTimeout
	if err := a.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", id, classify(err, domain.ErrActionFailed))
	}
	return nil
}

// Ping checks that the daemon answers.
func (a *Adapter) Ping(ctx context.Context) error {
	if _, err := a.cli.Ping(ctx); err != nil {
		return fmt.Errorf("ping docker daemon: %w", classify(err, domain.ErrRuntimeUnavailable))
	}
	return nil
}

// Close releases the underlying client transport.
func (a *Adapter) Close() error {
	return a.cli.Close()
}

// classify tags a docker error with a domain kind. Connection failures and
// missing containers are recognised; anything else gets fallback.
func classify(err error, fallback error) error {
	switch {
	case client.IsErrConnectionFailed(err):
		return fmt.Errorf("%w: %w", domain.ErrRuntimeUnavailable, err)
	case errdefs.IsNotFound(err):
		return fmt.Errorf("%w: %w", domain.ErrContainerNotFound, err)
	case errors.Is(err, context.DeadlineExceeded) && fallback == domain.ErrRuntimeUnavailable:
		return fmt.Errorf("%w: %w", domain.ErrRuntimeUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", fallback, err)
	}
}

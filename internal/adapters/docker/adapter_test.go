package docker

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/melih/lighthouse-tray/internal/core/domain"
)

// fakeDocker records calls and returns configured responses.
// Embeds client.APIClient so unused methods panic if called.
type fakeDocker struct {
	client.APIClient

	listResult    []container.Summary
	listErr       error
	listOpts      container.ListOptions
	inspectResult container.InspectResponse
	inspectErr    error
	startErr      error
	stopErr       error
	stopTimeout   *int

	calls []string
}

func (f *fakeDocker) ContainerList(_ context.Context, opts container.ListOptions) ([]container.Summary, error) {
	f.calls = append(f.calls, "List")
	f.listOpts = opts
	return f.listResult, f.listErr
}

func (f *fakeDocker) ContainerInspect(_ context.Context, _ string) (container.InspectResponse, error) {
	f.calls = append(f.calls, "Inspect")
	return f.inspectResult, f.inspectErr
}

func (f *fakeDocker) ContainerStart(_ context.Context, _ string, _ container.StartOptions) error {
	f.calls = append(f.calls, "Start")
	return f.startErr
}

func (f *fakeDocker) ContainerStop(_ context.Context, _ string, opts container.StopOptions) error {
	f.calls = append(f.calls, "Stop")
	f.stopTimeout = opts.Timeout
	return f.stopErr
}

func TestListAll_IncludesStoppedAndKeepsOrder(t *testing.T) {
	docker := &fakeDocker{
		listResult: []container.Summary{
			{ID: "zzz111", Names: []string{"/zeta"}, Image: "nginx", State: "running", Status: "Up 3 minutes"},
			{ID: "aaa222", Names: []string{"/alpha"}, Image: "redis", State: "exited", Status: "Exited (0)"},
			{ID: "mmm333", Names: nil, Image: "busybox", State: "created"},
		},
	}
	a := NewWithClient(docker)

	got, err := a.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if !docker.listOpts.All {
		t.Error("ListAll must request stopped containers (All: true)")
	}

	want := []domain.ContainerSummary{
		{ID: "zzz111", Name: "zeta", Image: "nginx", State: domain.StateRunning, Status: "Up 3 minutes"},
		{ID: "aaa222", Name: "alpha", Image: "redis", State: domain.StateStopped, Status: "Exited (0)"},
		{ID: "mmm333", Name: "", Image: "busybox", State: domain.StateStopped},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ListAll = %+v, want %+v", got, want)
	}
}

func TestListAll_WrapsRuntimeError(t *testing.T) {
	cause := errors.New("daemon exploded")
	a := NewWithClient(&fakeDocker{listErr: cause})

	_, err := a.ListAll(context.Background())
	if !errors.Is(err, domain.ErrRuntimeUnavailable) {
		t.Errorf("got %v, want ErrRuntimeUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("got %v, want wrapped cause", err)
	}
}

func TestListAll_ConnectionFailure(t *testing.T) {
	cli, err := client.NewClientWithOpts(client.WithHost("unix:///nonexistent/lighthouse-tray/docker.sock"))
	if err != nil {
		t.Fatalf("NewClientWithOpts: %v", err)
	}
	defer cli.Close()

	_, err = NewWithClient(cli).ListAll(context.Background())
	if !errors.Is(err, domain.ErrRuntimeUnavailable) {
		t.Errorf("got %v, want ErrRuntimeUnavailable", err)
	}
}

func TestGet_MapsInspectState(t *testing.T) {
	docker := &fakeDocker{
		inspectResult: container.InspectResponse{
			ContainerJSONBase: &container.ContainerJSONBase{
				ID:    "abc123",
				Name:  "/web-1",
				State: &container.State{Running: true, Status: "running"},
			},
			Config: &container.Config{Image: "nginx:latest"},
		},
	}
	a := NewWithClient(docker)

	got, err := a.Get(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := domain.ContainerSummary{ID: "abc123", Name: "web-1", Image: "nginx:latest", State: domain.StateRunning, Status: "running"}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	a := NewWithClient(&fakeDocker{inspectErr: errdefs.ErrNotFound})

	_, err := a.Get(context.Background(), "ghost-id")
	if !errors.Is(err, domain.ErrContainerNotFound) {
		t.Errorf("got %v, want ErrContainerNotFound", err)
	}
}

func TestStart_WrapsActionFailure(t *testing.T) {
	docker := &fakeDocker{startErr: errdefs.ErrPermissionDenied}
	a := NewWithClient(docker)

	err := a.Start(context.Background(), "abc")
	if !errors.Is(err, domain.ErrActionFailed) {
		t.Errorf("got %v, want ErrActionFailed", err)
	}
	if want := []string{"Start"}; !slices.Equal(docker.calls, want) {
		t.Errorf("calls = %v, want %v", docker.calls, want)
	}
}

func TestStop_UsesConfiguredTimeout(t *testing.T) {
	docker := &fakeDocker{}
	a := NewWithClient(docker, WithStopTimeout(3))

	if err := a.Stop(context.Background(), "abc"); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if docker.stopTimeout == nil || *docker.stopTimeout != 3 {
		t.Errorf("stop timeout = %v, want 3", docker.stopTimeout)
	}
}

func TestStop_NotFound(t *testing.T) {
	a := NewWithClient(&fakeDocker{stopErr: errdefs.ErrNotFound})

	err := a.Stop(context.Background(), "abc")
	if !errors.Is(err, domain.ErrContainerNotFound) {
		t.Errorf("got %v, want ErrContainerNotFound", err)
	}
}

func TestGet_StateMatchesListAll(t *testing.T) {
	tests := []struct {
		name  string
		state container.State
		want  domain.ContainerState
	}{
		{name: "running", state: container.State{Status: "running", Running: true}, want: domain.StateRunning},
		{name: "paused", state: container.State{Status: "paused", Running: true, Paused: true}, want: domain.StateStopped},
		{name: "restarting", state: container.State{Status: "restarting", Running: true, Restarting: true}, want: domain.StateStopped},
		{name: "exited", state: container.State{Status: "exited", ExitCode: 137}, want: domain.StateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.state
			docker := &fakeDocker{
				listResult: []container.Summary{
					{ID: "abc123", Names: []string{"/web-1"}, State: state.Status},
				},
				inspectResult: container.InspectResponse{
					ContainerJSONBase: &container.ContainerJSONBase{ID: "abc123", Name: "/web-1", State: &state},
				},
			}
			a := NewWithClient(docker)

			listed, err := a.ListAll(context.Background())
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			got, err := a.Get(context.Background(), "abc123")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if listed[0].State != tt.want {
				t.Errorf("ListAll state = %v, want %v", listed[0].State, tt.want)
			}
			if got.State != listed[0].State {
				t.Errorf("Get state = %v, ListAll state = %v", got.State, listed[0].State)
			}
		})
	}
}

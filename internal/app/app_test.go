package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/melih/lighthouse-tray/internal/adapters/fake"
	"github.com/melih/lighthouse-tray/internal/config"
	"github.com/melih/lighthouse-tray/internal/core/domain"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Listen = ""
	cfg.Notifications = false
	cfg.PollInterval = time.Hour
	return cfg
}

func TestNew_DisablesAPIWithoutListen(t *testing.T) {
	a := New(testConfig(), fake.NewRuntime())
	if a.API() != nil {
		t.Error("API should be nil when listen is empty")
	}

	cfg := testConfig()
	cfg.Listen = "127.0.0.1:0"
	if New(cfg, fake.NewRuntime()).API() == nil {
		t.Error("API should be built when listen is set")
	}
}

func TestRun_ToggleRefreshesSnapshot(t *testing.T) {
	rt := fake.NewRuntime(domain.ContainerSummary{ID: "web-1", Name: "web-1", State: domain.StateStopped})
	a := New(testConfig(), rt)
	sub := a.Poller.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	next := func() domain.Snapshot {
		t.Helper()
		select {
		case s := <-sub:
			return s
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for snapshot")
			return domain.Snapshot{}
		}
	}
	if c, _ := next().Find("web-1"); c.State != domain.StateStopped {
		t.Fatalf("initial state = %v", c.State)
	}

	ch, err := a.Dispatcher.Toggle("web-1")
	if err != nil {
		t.Fatal(err)
	}
	if res := <-ch; res.Outcome != domain.OutcomeStarted {
		t.Fatalf("result = %+v", res)
	}
	if c, _ := next().Find("web-1"); c.State != domain.StateRunning {
		t.Errorf("state after toggle = %v", c.State)
	}

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v", err)
	}
}

func TestApplyConfig(t *testing.T) {
	a := New(testConfig(), fake.NewRuntime())

	cfg := testConfig()
	cfg.PollInterval = 2 * time.Second
	cfg.LogLevel = "info"
	a.ApplyConfig(cfg)

	cfg.PollInterval = 0
	a.ApplyConfig(cfg) // logged and ignored
}

package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestStateFromRuntime(t *testing.T) {
	tests := []struct {
		in   string
		want ContainerState
	}{
		{"running", StateRunning},
		{"exited", StateStopped},
		{"created", StateStopped},
		{"paused", StateStopped},
		{"restarting", StateStopped},
		{"dead", StateStopped},
		{"", StateStopped},
	}
	for _, tt := range tests {
		if got := StateFromRuntime(tt.in); got != tt.want {
			t.Errorf("StateFromRuntime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestActionFor(t *testing.T) {
	if a, ok := ActionFor(StateRunning); !ok || a != ActionStop {
		t.Errorf("ActionFor(running) = %v, %v", a, ok)
	}
	if a, ok := ActionFor(StateStopped); !ok || a != ActionStart {
		t.Errorf("ActionFor(stopped) = %v, %v", a, ok)
	}
	if _, ok := ActionFor(StateUnknown); ok {
		t.Error("ActionFor(unknown) should not yield an action")
	}
}

func TestCompletedMessages(t *testing.T) {
	start := Completed(ActionRequest{ContainerID: "abc", Action: ActionStart}, "web-1")
	if start.Outcome != OutcomeStarted || start.Message != "Container web-1 started" {
		t.Errorf("start result = %+v", start)
	}
	stop := Completed(ActionRequest{ContainerID: "abc", Action: ActionStop}, "web-1")
	if stop.Outcome != OutcomeStopped || stop.Message != "Container web-1 stopped" {
		t.Errorf("stop result = %+v", stop)
	}
}

func TestFailedKeepsCause(t *testing.T) {
	res := Failed("req", "ghost-id", "ghost-id", ErrContainerNotFound)
	if res.Succeeded() {
		t.Fatal("failed result reports success")
	}
	if !errors.Is(res.Err, ErrContainerNotFound) {
		t.Errorf("Err = %v, want ErrContainerNotFound", res.Err)
	}
	if !strings.Contains(res.Message, "ghost-id") || !strings.Contains(res.Message, "container not found") {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestDisplayNameFallsBackToShortID(t *testing.T) {
	c := ContainerSummary{ID: "0123456789abcdef"}
	if got := c.DisplayName(); got != "0123456789ab" {
		t.Errorf("DisplayName() = %q", got)
	}
}

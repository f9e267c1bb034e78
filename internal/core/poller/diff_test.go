package poller

import (
	"slices"
	"testing"

	"github.com/melih/lighthouse-tray/internal/core/domain"
)

func TestDiff(t *testing.T) {
	prev := []domain.ContainerSummary{
		{ID: "web", Name: "web-1", State: domain.StateStopped},
		{ID: "db", Name: "db", State: domain.StateRunning},
		{ID: "old", Name: "old", State: domain.StateStopped},
	}
	next := []domain.ContainerSummary{
		{ID: "web", Name: "web-1", State: domain.StateRunning},
		{ID: "db", Name: "db", State: domain.StateRunning},
		{ID: "new", Name: "new", State: domain.StateStopped},
	}

	got := Diff(prev, next)
	want := []Transition{
		{ID: "web", Name: "web-1", From: domain.StateStopped, To: domain.StateRunning},
		{ID: "new", Name: "new", From: domain.StateUnknown, To: domain.StateStopped},
		{ID: "old", Name: "old", From: domain.StateStopped, To: domain.StateUnknown},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiff_NoChanges(t *testing.T) {
	snap := []domain.ContainerSummary{{ID: "a", State: domain.StateRunning}}
	if got := Diff(snap, snap); len(got) != 0 {
		t.Errorf("Diff of identical snapshots = %+v", got)
	}
}

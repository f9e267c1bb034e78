package domain

import "time"

// ContainerState is the coarse lifecycle state shown to the user.
type ContainerState int

const (
	StateUnknown ContainerState = iota
	StateRunning
	StateStopped
)

func (s ContainerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// MarshalText renders the state as its lower-case name in JSON.
func (s ContainerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StateFromRuntime maps a runtime-reported state ("running", "exited", ...)
// to a ContainerState. Only "running" counts as running.
func StateFromRuntime(state string) ContainerState {
	if state == "running" {
		return StateRunning
	}
	return StateStopped
}

// ContainerSummary is one row of a snapshot. Identity across snapshots is ID only.
type ContainerSummary struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Image  string         `json:"image"`
	State  ContainerState `json:"state"`
	Status string         `json:"status"` // raw runtime status, e.g. "Up 3 minutes"
}

// Running reports whether the container was running when observed.
func (c ContainerSummary) Running() bool {
	return c.State == StateRunning
}

// DisplayName returns the name, falling back to the short ID.
func (c ContainerSummary) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return ShortID(c.ID)
}

// ShortID truncates a runtime id to the 12 characters docker prints.
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// Snapshot is one point-in-time listing of all containers.
type Snapshot struct {
	Containers []ContainerSummary
	Err        error
	TakenAt    time.Time
}

// Degraded reports whether the runtime could not be queried for this snapshot.
func (s Snapshot) Degraded() bool {
	return s.Err != nil
}

// Find returns the summary with the given id.
func (s Snapshot) Find(id string) (ContainerSummary, bool) {
	for _, c := range s.Containers {
		if c.ID == id {
			return c, true
		}
	}
	return ContainerSummary{}, false
}

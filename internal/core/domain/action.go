package domain

import (
	"fmt"
	"time"
)

// Action is the operation issued against a container.
type Action int

const (
	ActionStart Action = iota + 1
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	default:
		return "none"
	}
}

// ActionFor returns the action that inverts the given state.
func ActionFor(s ContainerState) (Action, bool) {
	switch s {
	case StateRunning:
		return ActionStop, true
	case StateStopped:
		return ActionStart, true
	default:
		return 0, false
	}
}

// ActionRequest lives from the user's click until the runtime call returns.
type ActionRequest struct {
	ID          string
	ContainerID string
	Action      Action
	RequestedAt time.Time
}

// Outcome is the result kind of a toggle.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeStarted
	OutcomeStopped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeStopped:
		return "stopped"
	default:
		return "failed"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ActionResult is what the presentation layer shows after a toggle.
type ActionResult struct {
	RequestID   string  `json:"request_id"`
	ContainerID string  `json:"container_id"`
	Name        string  `json:"name"`
	Outcome     Outcome `json:"outcome"`
	Message     string  `json:"message"`
	Err         error   `json:"-"`
}

// Succeeded reports whether the action reached the runtime and completed.
func (r ActionResult) Succeeded() bool {
	return r.Outcome != OutcomeFailed
}

// Completed builds the success result for an action taken on a container.
func Completed(req ActionRequest, name string) ActionResult {
	res := ActionResult{
		RequestID:   req.ID,
		ContainerID: req.ContainerID,
		Name:        name,
	}
	switch req.Action {
	case ActionStop:
		res.Outcome = OutcomeStopped
		res.Message = fmt.Sprintf("Container %s stopped", name)
	default:
		res.Outcome = OutcomeStarted
		res.Message = fmt.Sprintf("Container %s started", name)
	}
	return res
}

// Failed builds the failure result. label is the name when known, else the id.
func Failed(requestID, containerID, label string, err error) ActionResult {
	return ActionResult{
		RequestID:   requestID,
		ContainerID: containerID,
		Name:        label,
		Outcome:     OutcomeFailed,
		Message:     fmt.Sprintf("Error switching container %s: %v", label, err),
		Err:         err,
	}
}

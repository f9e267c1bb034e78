package domain

import "errors"

var (
	// ErrRuntimeUnavailable means the container daemon or its socket is unreachable.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")
	// ErrContainerNotFound means the id vanished between poll and action.
	ErrContainerNotFound = errors.New("container not found")
	// ErrActionFailed means the start or stop call itself was refused.
	ErrActionFailed = errors.New("container action failed")
	// ErrActionInFlight is returned when a toggle for the same id is still pending.
	ErrActionInFlight = errors.New("action already in flight")
)

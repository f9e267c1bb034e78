package poller

import "github.com/melih/lighthouse-tray/internal/core/domain"

// Transition is a per-container change between two snapshots. A container
// that appeared has From == StateUnknown; one that vanished has To == StateUnknown.
type Transition struct {
	ID   string
	Name string
	From domain.ContainerState
	To   domain.ContainerState
}

// Diff lists transitions from prev to next, matched by id. Appearances and
// state changes follow next's order; vanished containers come last in prev's order.
func Diff(prev, next []domain.ContainerSummary) []Transition {
	before := make(map[string]domain.ContainerState, len(prev))
	for _, c := range prev {
		before[c.ID] = c.State
	}

	var out []Transition
	seen := make(map[string]struct{}, len(next))
	for _, c := range next {
		seen[c.ID] = struct{}{}
		old, ok := before[c.ID]
		if !ok {
			old = domain.StateUnknown
		}
		if old != c.State {
			out = append(out, Transition{ID: c.ID, Name: c.Name, From: old, To: c.State})
		}
	}
	for _, c := range prev {
		if _, ok := seen[c.ID]; !ok {
			out = append(out, Transition{ID: c.ID, Name: c.Name, From: c.State, To: domain.StateUnknown})
		}
	}
	return out
}

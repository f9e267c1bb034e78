package fake

import "sync"

// Op names a runtime operation.
type Op string

const (
	OpListAll Op = "ListAll"
	OpGet     Op = "Get"
	OpStart   Op = "Start"
	OpStop    Op = "Stop"
)

// Call is one runtime operation as seen by the fake. ContainerID is empty for ListAll.
type Call struct {
	Op          Op
	ContainerID string
}

// CallRecorder keeps the runtime calls in the order they arrived.
type CallRecorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *CallRecorder) record(op Op, id string) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Op: op, ContainerID: id})
	r.mu.Unlock()
}

// Calls returns the recorded calls of kind op, or every call when op is "".
func (r *CallRecorder) Calls(op Op) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Call
	for _, c := range r.calls {
		if op == "" || c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Actions counts the Start and Stop calls that reached container id.
func (r *CallRecorder) Actions(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.calls {
		if c.ContainerID == id && (c.Op == OpStart || c.Op == OpStop) {
			n++
		}
	}
	return n
}

// Reset forgets every recorded call.
func (r *CallRecorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

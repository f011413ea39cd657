// Package workflow holds the status-transition primitives shared by the
// approval flows: an in-memory single-record replace and a small state
// machine used by the persisted services.
package workflow

// Apply returns a copy of records in which the record whose id matches has
// been replaced by mutate(record). Every other element is copied unchanged.
// The second result is false, and the copy equals the input, when no record
// has that id. Apply does not check the current status.
func Apply[T any](records []T, id string, idOf func(T) string, mutate func(T) T) ([]T, bool) {
	out := make([]T, len(records))
	copy(out, records)

	for i, r := range out {
		if idOf(r) == id {
			out[i] = mutate(r)
			return out, true
		}
	}
	return out, false
}

// Machine is a status graph with named terminal states.
type Machine struct {
	initial string
	edges   map[string][]string
}

func NewMachine(initial string, edges map[string][]string) Machine {
	return Machine{initial: initial, edges: edges}
}

func (m Machine) Initial() string { return m.initial }

// Can reports whether from -> to is an edge of the graph.
func (m Machine) Can(from, to string) bool {
	for _, next := range m.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Known reports whether status appears anywhere in the graph.
func (m Machine) Known(status string) bool {
	if status == m.initial {
		return true
	}
	for from, targets := range m.edges {
		if from == status {
			return true
		}
		for _, t := range targets {
			if t == status {
				return true
			}
		}
	}
	return false
}

func (m Machine) IsTerminal(status string) bool {
	return m.Known(status) && len(m.edges[status]) == 0
}

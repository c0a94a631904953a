// Package state holds the in-memory task list a view works against, and the
// reconciliation rules that keep it aligned with the backend after
// mutations without re-fetching.
package state

import "tdo/internal/service"

// Filter selects a derived view of the board.
type Filter string

// Available filters.
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(s), true
	}
	return "", false
}

// Board is a cache of the last known server state. It has no identity of
// its own: it is discarded on exit and rebuilt from ListTasks. Mutations
// are applied from the resolution of a single request at a time, so no
// locking is needed.
type Board struct {
	tasks []service.Task
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Load replaces the board contents with a fresh server snapshot,
// preserving server order.
func (b *Board) Load(tasks []service.Task) {
	b.tasks = make([]service.Task, len(tasks))
	copy(b.tasks, tasks)
}

// Tasks returns the current contents in order.
func (b *Board) Tasks() []service.Task {
	return b.tasks
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Prepend reconciles a successful create: the new task goes first,
// most-recent-first display.
func (b *Board) Prepend(t service.Task) {
	b.tasks = append([]service.Task{t}, b.tasks...)
}

// Replace reconciles a successful update: the task with the same id is
// swapped in place, order preserved. Returns false if the id is unknown.
func (b *Board) Replace(t service.Task) bool {
	for i := range b.tasks {
		if b.tasks[i].ID == t.ID {
			b.tasks[i] = t
			return true
		}
	}
	return false
}

// Remove reconciles a successful delete: the task with the given id is
// dropped, order of the rest preserved. Returns false if the id is unknown.
func (b *Board) Remove(id int64) bool {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the task with the given id.
func (b *Board) Find(id int64) (service.Task, bool) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Filtered returns the tasks matching the filter, in board order.
func (b *Board) Filtered(f Filter) []service.Task {
	if f == FilterAll || f == "" {
		return b.tasks
	}
	var out []service.Task
	for _, t := range b.tasks {
		switch f {
		case FilterActive:
			if !t.Completed {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.Completed {
				out = append(out, t)
			}
		}
	}
	return out
}

package service

import "time"

// Priority is the task priority level.
type Priority string

// Priority levels, as carried on the wire.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single task item as returned by the backend.
// ID and the timestamps are server-assigned.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskDraft holds the caller-supplied fields for a new task.
// An empty Priority is sent as PriorityMedium.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskPatch is a partial update: one optional slot per mutable attribute.
// Nil fields are omitted from the request body and left untouched
// server-side.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// IsZero reports whether the patch carries no fields.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.DueDate == nil
}

// User is the identity derived from the bearer token's claims.
type User struct {
	ID    string
	Email string
	Name  string
}

// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for backend operations.
// All HTTP calls go through this interface; commands never build requests
// themselves.
type Service interface {
	// Login exchanges credentials for a bearer token.
	// The token is returned, not stored; persisting it is the caller's job.
	Login(ctx context.Context, email, password string) (string, error)

	// ListTasks returns the authenticated user's tasks in server order.
	// No client-side sorting or transformation is applied.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it with the server-assigned
	// id and timestamps.
	CreateTask(ctx context.Context, draft TaskDraft) (Task, error)

	// UpdateTask applies a partial update and returns the full updated task.
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id int64) error
}

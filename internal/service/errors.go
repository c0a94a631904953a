package service

import "errors"

// Error taxonomy. Sentinels are wrapped with %w by implementations and
// matched with errors.Is at the command boundary.
var (
	// ErrNotAuthenticated is raised locally, before any network call,
	// when no valid token exists.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoginFailed covers rejected credentials and login transport errors.
	ErrLoginFailed = errors.New("login failed")

	// Per-operation failures for non-success HTTP statuses.
	ErrFetchFailed  = errors.New("failed to fetch tasks")
	ErrCreateFailed = errors.New("failed to create task")
	ErrUpdateFailed = errors.New("failed to update task")
	ErrDeleteFailed = errors.New("failed to delete task")
)

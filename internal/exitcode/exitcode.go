// Package exitcode defines exit codes for the CLI.
package exitcode

// Exit codes.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown id, blank title).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

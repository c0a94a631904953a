package commands

import (
	"errors"
	"fmt"
	"io"

	"tdo/internal/exitcode"
	"tdo/internal/service"
)

// reportServiceError prints a service error and maps it to an exit code.
// A session that went invalid between the dispatcher's check and the call
// lands here as ErrNotAuthenticated.
func reportServiceError(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrNotAuthenticated) {
		fmt.Fprintln(errOut, "error: not logged in (run: tdo login)")
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}

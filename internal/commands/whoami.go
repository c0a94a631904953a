package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tdo/internal/auth"
	"tdo/internal/config"
	"tdo/internal/exitcode"
	"tdo/internal/output"
	"tdo/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the identity derived from the stored token's claims.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "tdo whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	user, ok := sess.CurrentUser()
	if !ok {
		fmt.Fprintln(errOut, "error: not logged in (run: tdo login)")
		return exitcode.AuthError
	}

	output.FormatUser(out, user)
	return exitcode.Success
}

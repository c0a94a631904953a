package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tdo/internal/auth"
	"tdo/internal/config"
	"tdo/internal/exitcode"
	"tdo/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string

	// Stdin is where the password prompt reads from. Defaults to os.Stdin.
	Stdin io.Reader
}

// SetPassword sets the password flag (for testing).
func (c *LoginCmd) SetPassword(p string) {
	c.password = p
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with the backend" }
func (c *LoginCmd) Usage() string     { return "tdo login [common flags] [--password <pw>] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := strings.TrimSpace(args[0])
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	// A still-valid session short-circuits; an expired or malformed stored
	// token was already cleared by the check itself.
	if sess.IsAuthenticated() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	password := c.password
	if password == "" {
		in := c.Stdin
		if in == nil {
			in = os.Stdin
		}
		fmt.Fprint(errOut, "password: ")
		scanner := bufio.NewScanner(in)
		if scanner.Scan() {
			password = strings.TrimSpace(scanner.Text())
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	token, err := svc.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if err := sess.SaveToken(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

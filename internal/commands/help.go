package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tdo/internal/auth"
	"tdo/internal/config"
	"tdo/internal/exitcode"
	"tdo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tdo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tdo                                                List all tasks
  tdo list [common flags] [--filter all|active|completed]
  tdo add [common flags] [--desc <text>] [--priority low|medium|high] [--due YYYY-MM-DD] <title...>
  tdo done [common flags] <id>
  tdo undo [common flags] <id>
  tdo edit [common flags] [--title <text>] [--desc <text>] [--priority <p>] [--due <date>] <id>
  tdo rm [common flags] <id>
  tdo progress [common flags]
  tdo dashboard [common flags]
  tdo login [common flags] [--password <pw>] <email>
  tdo logout [common flags]
  tdo whoami [common flags]
  tdo help
  tdo version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TDO_API_URL      Backend origin (default http://localhost:8000)
`

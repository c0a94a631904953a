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
	"tdo/internal/state"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It is also the default command when
// tdo is invoked with no arguments.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter (for testing).
func (c *ListCmd) SetFilter(f string) {
	c.filter = f
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tdo list [common flags] [--filter all|active|completed]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	filter, ok := state.ParseFilter(c.filter)
	if !ok {
		fmt.Fprintf(errOut, "error: invalid filter: %s (want all, active or completed)\n", c.filter)
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportServiceError(errOut, err)
	}

	board := state.NewBoard()
	board.Load(tasks)

	visible := board.Filtered(filter)
	if len(visible) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, task := range visible {
		output.FormatTask(out, int(task.ID), task)
	}

	return exitcode.Success
}

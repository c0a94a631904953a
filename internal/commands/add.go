package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"tdo/internal/auth"
	"tdo/internal/config"
	"tdo/internal/exitcode"
	"tdo/internal/output"
	"tdo/internal/service"
)

// dueDateLayout is the accepted format for the --due flag.
const dueDateLayout = "2006-01-02"

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc     string
	priority string
	due      string
}

// SetPriority sets the priority flag (for testing).
func (c *AddCmd) SetPriority(p string) {
	c.priority = p
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tdo add [common flags] [--desc <text>] [--priority low|medium|high] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
	fs.StringVar(&c.priority, "priority", string(service.PriorityMedium), "")
	fs.StringVar(&c.priority, "p", string(service.PriorityMedium), "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	// Title validation happens here, before any service call.
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	priority := service.Priority(c.priority)
	if !priority.Valid() {
		fmt.Fprintf(errOut, "error: invalid priority: %s (want low, medium or high)\n", c.priority)
		return exitcode.UserError
	}

	draft := service.TaskDraft{
		Title:       title,
		Description: c.desc,
		Priority:    priority,
	}

	if c.due != "" {
		due, err := time.Parse(dueDateLayout, c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", c.due)
			return exitcode.UserError
		}
		draft.DueDate = &due
	}

	task, err := svc.CreateTask(ctx, draft)
	if err != nil {
		return reportServiceError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, int(task.ID), task)
	}
	return exitcode.Success
}

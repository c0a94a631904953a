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

func init() {
	Register(&EditCmd{})
}

// EditCmd applies a partial update to a task. Only flags that were provided
// end up in the patch; empty flag values are treated as "not provided".
type EditCmd struct {
	title    string
	desc     string
	priority string
	due      string
}

// Setters for testing.
func (c *EditCmd) SetTitle(v string)    { c.title = v }
func (c *EditCmd) SetPriority(v string) { c.priority = v }
func (c *EditCmd) SetDue(v string)      { c.due = v }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "tdo edit [common flags] [--title <text>] [--desc <text>] [--priority low|medium|high] [--due YYYY-MM-DD] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		if err == ErrTaskIDRequired {
			fmt.Fprintln(errOut, "error: task id required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	var patch service.TaskPatch

	if c.title != "" {
		title := strings.TrimSpace(c.title)
		if title == "" {
			fmt.Fprintln(errOut, "error: title required")
			return exitcode.UserError
		}
		patch.Title = &title
	}
	if c.desc != "" {
		patch.Description = &c.desc
	}
	if c.priority != "" {
		priority := service.Priority(c.priority)
		if !priority.Valid() {
			fmt.Fprintf(errOut, "error: invalid priority: %s (want low, medium or high)\n", c.priority)
			return exitcode.UserError
		}
		patch.Priority = &priority
	}
	if c.due != "" {
		due, err := time.Parse(dueDateLayout, c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", c.due)
			return exitcode.UserError
		}
		patch.DueDate = &due
	}

	if patch.IsZero() {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	task, err := svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return reportServiceError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTaskDetail(out, task)
	}
	return exitcode.Success
}

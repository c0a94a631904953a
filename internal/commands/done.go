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
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd marks a task completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "tdo done [common flags] <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc, args, true, out, errOut)
}

// UndoCmd marks a completed task active again.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string  { return "Mark a task active again" }
func (c *UndoCmd) Usage() string     { return "tdo undo [common flags] <id>" }
func (c *UndoCmd) NeedsAuth() bool   { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc, args, false, out, errOut)
}

// runSetCompleted is the shared implementation for done and undo.
// Only the completed field travels in the patch; everything else is left
// untouched server-side.
func runSetCompleted(ctx context.Context, cfg *config.Config, svc service.Service, args []string, completed bool, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		if err == ErrTaskIDRequired {
			fmt.Fprintln(errOut, "error: task id required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	patch := service.TaskPatch{Completed: &completed}
	task, err := svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return reportServiceError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, int(task.ID), task)
	}
	return exitcode.Success
}

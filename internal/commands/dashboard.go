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
	"tdo/internal/output"
	"tdo/internal/service"
	"tdo/internal/state"
)

func init() {
	Register(&DashboardCmd{})
}

// DashboardCmd is the interactive mode: the task list is fetched once and
// then kept consistent by reconciling each mutation's response into the
// in-memory board instead of re-fetching. A change made elsewhere is not
// visible until `refresh`; that trade-off is deliberate.
type DashboardCmd struct {
	// Stdin is where the loop reads from. Defaults to os.Stdin.
	Stdin io.Reader
}

func (c *DashboardCmd) Name() string      { return "dashboard" }
func (c *DashboardCmd) Aliases() []string { return []string{"dash"} }
func (c *DashboardCmd) Synopsis() string  { return "Interactive task dashboard" }
func (c *DashboardCmd) Usage() string     { return "tdo dashboard [common flags]" }
func (c *DashboardCmd) NeedsAuth() bool   { return true }

func (c *DashboardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashboardCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportServiceError(errOut, err)
	}

	board := state.NewBoard()
	board.Load(tasks)
	filter := state.FilterAll

	if user, ok := sess.CurrentUser(); ok && !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.Name)
	}

	render := func() {
		visible := board.Filtered(filter)
		stats := state.Summarize(board.Tasks())
		fmt.Fprintf(out, "-- %s (%d/%d done, %d%%)\n", filter, stats.Completed, stats.Total, stats.Percent)
		if len(visible) == 0 {
			fmt.Fprintln(out, "no tasks")
			return
		}
		for _, t := range visible {
			output.FormatTask(out, int(t.ID), t)
		}
	}

	render()

	in := c.Stdin
	if in == nil {
		in = os.Stdin
	}
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			// EOF ends the session cleanly.
			fmt.Fprintln(out)
			return exitcode.Success
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "quit", "exit":
			return exitcode.Success

		case "add":
			title := strings.TrimSpace(strings.Join(fields[1:], " "))
			if title == "" {
				fmt.Fprintln(errOut, "error: title required")
				continue
			}
			task, err := svc.CreateTask(ctx, service.TaskDraft{Title: title, Priority: service.PriorityMedium})
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			board.Prepend(task)
			render()

		case "done", "undo":
			id, err := ParseTaskID(fields[1:])
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			if _, ok := board.Find(id); !ok {
				fmt.Fprintf(errOut, "error: unknown task id: %d\n", id)
				continue
			}
			completed := fields[0] == "done"
			task, err := svc.UpdateTask(ctx, id, service.TaskPatch{Completed: &completed})
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			board.Replace(task)
			render()

		case "rm":
			id, err := ParseTaskID(fields[1:])
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			if _, ok := board.Find(id); !ok {
				fmt.Fprintf(errOut, "error: unknown task id: %d\n", id)
				continue
			}
			if err := svc.DeleteTask(ctx, id); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			board.Remove(id)
			render()

		case "filter":
			if len(fields) < 2 {
				fmt.Fprintln(errOut, "error: filter name required")
				continue
			}
			f, ok := state.ParseFilter(fields[1])
			if !ok {
				fmt.Fprintf(errOut, "error: invalid filter: %s (want all, active or completed)\n", fields[1])
				continue
			}
			filter = f
			render()

		case "refresh":
			tasks, err := svc.ListTasks(ctx)
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			board.Load(tasks)
			render()

		case "progress":
			output.FormatStats(out, state.Summarize(board.Tasks()))

		case "help":
			fmt.Fprint(out, dashboardHelp)

		default:
			fmt.Fprintf(errOut, "error: unknown command: %s\n", fields[0])
		}
	}
}

const dashboardHelp = `Commands:
  add <title...>      Create a task
  done <id>           Mark a task completed
  undo <id>           Mark a task active again
  rm <id>             Delete a task
  filter <name>       Switch view: all, active, completed
  refresh             Re-fetch the list from the backend
  progress            Show completion stats
  quit                Leave the dashboard
`

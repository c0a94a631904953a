package commands

import (
	"context"
	"flag"
	"io"

	"tdo/internal/auth"
	"tdo/internal/config"
	"tdo/internal/exitcode"
	"tdo/internal/output"
	"tdo/internal/service"
	"tdo/internal/state"
)

func init() {
	Register(&ProgressCmd{})
}

// ProgressCmd prints completion stats overall and broken down by priority.
type ProgressCmd struct{}

func (c *ProgressCmd) Name() string      { return "progress" }
func (c *ProgressCmd) Aliases() []string { return []string{"stats"} }
func (c *ProgressCmd) Synopsis() string  { return "Show completion progress" }
func (c *ProgressCmd) Usage() string     { return "tdo progress [common flags]" }
func (c *ProgressCmd) NeedsAuth() bool   { return true }

func (c *ProgressCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProgressCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportServiceError(errOut, err)
	}

	output.FormatStats(out, state.Summarize(tasks))
	for _, ps := range state.ByPriority(tasks) {
		output.FormatBar(out, string(ps.Priority), ps.Stats)
	}

	return exitcode.Success
}

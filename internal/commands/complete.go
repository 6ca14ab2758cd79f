package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&CompleteCmd{})
}

// CompleteCmd implements the complete command.
type CompleteCmd struct{}

func (c *CompleteCmd) Name() string      { return "complete" }
func (c *CompleteCmd) Aliases() []string { return []string{"done"} }
func (c *CompleteCmd) Synopsis() string  { return "Mark a task as completed" }
func (c *CompleteCmd) Usage() string     { return "todo complete <id>" }
func (c *CompleteCmd) NeedsStore() bool  { return true }

func (c *CompleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CompleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	if err := svc.CompleteTask(ctx, id); err != nil {
		// Not found is an ordinary outcome, not a failure.
		if errors.Is(err, service.ErrNotFound) {
			output.FormatNotFound(out, id)
			return exitcode.Success
		}
		return storeFailure(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatCompleted(out, id)
	}
	return exitcode.Success
}

package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lextech/dotnetgate/internal/config"
	"github.com/lextech/dotnetgate/internal/engine"
	"github.com/lextech/dotnetgate/internal/event"
	"github.com/lextech/dotnetgate/internal/finding"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	File string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check one edit event read from stdin",
		Long: `Check reads a single hook payload describing a proposed Write, Edit, or
MultiEdit, runs the convention checks for the target file, and prints any
diagnostics to stderr.

Exit status 0 allows the edit; exit status 2 blocks it and the host is
expected to undo the write. Malformed payloads are treated as nothing to
check and always allow.

Example:
  echo '{"tool_name":"Write","tool_input":{"file_path":"Api/OrderEndpoint.cs","content":"..."}}' | dotnetgate check`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "read the payload from a file instead of stdin (for replaying captured events)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	// One token per invocation correlates the log lines of a run; nothing
	// else about an invocation is identifying, events are never persisted.
	log := slog.With("run", uuid.Must(uuid.NewV7()).String())

	var in io.Reader = cmd.InOrStdin()
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return WrapExitError(ExitFailure, "read payload file", err)
		}
		in = bytes.NewReader(data)
	}

	tables, err := config.Load()
	if err != nil {
		// A broken embedded table is a build defect, not a property of
		// the edit. Fail loudly instead of failing open.
		return WrapExitError(ExitFailure, "load rule tables", err)
	}

	ev := event.Parse(in)
	log.Debug("event received", "tool", string(ev.Tool), "path", ev.Path, "bytes", len(ev.Text))

	report := engine.New(tables).Check(ev)
	engine.Render(cmd.ErrOrStderr(), report)

	if report.Decision() == finding.DecisionBlock {
		return NewExitError(ExitBlock, "edit blocked: "+ev.Path)
	}
	return nil
}

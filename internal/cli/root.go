// Package cli wires the gate into a cobra command tree.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the dotnetgate CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dotnetgate",
		Short: "Convention gate for .NET solution edits",
		Long: `dotnetgate inspects one proposed edit to a .NET solution and allows or
blocks it based on textual convention checks: coding standards, structured
logging hygiene, OpenAPI contract annotations, SQL parameterization, and
clean-architecture layer dependencies.

Diagnostics go to stderr. Exit status 0 allows the edit (warnings may have
been printed), exit status 2 blocks it.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}

// configureLogging routes slog to stderr. Diagnostics rendering has its own
// path; logging stays out of the way unless --verbose asks for it.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

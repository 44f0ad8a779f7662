package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lextech/dotnetgate/internal/config"
)

// NewRulesCommand creates the rules command, which prints the active rule
// inventory so authors can see what the gate enforces without reading the
// source.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rules",
		Short:         "List the active rule tables",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := config.Load()
			if err != nil {
				return WrapExitError(ExitFailure, "load rule tables", err)
			}
			printRules(cmd, tables)
			return nil
		},
	}
}

func printRules(cmd *cobra.Command, tables *config.Tables) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "C# rule set (*.cs):")
	fmt.Fprintln(out, "  implicit-type-usage         WARN   'var' declarations")
	fmt.Fprintln(out, "  missing-doc                 WARN   public types/methods without XML docs")
	fmt.Fprintln(out, "  missing-cancellation-param  WARN   async methods without CancellationToken")
	fmt.Fprintln(out, "  naming-shape-mismatch       WARN   Command/Query types not 'sealed record'")
	fmt.Fprintln(out, "  log-interpolation           WARN   string interpolation in log calls")
	fmt.Fprintln(out, "  log-sensitive-data          WARN   sensitive names in log calls")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Endpoint files (*Endpoint*.cs) additionally:")
	for _, m := range tables.RequiredMarkers {
		fmt.Fprintf(out, "  %-27s WARN   requires %s\n", m.ID, strings.Join(m.Any, " or "))
	}
	fmt.Fprintln(out, "  direct-domain-param         WARN   Command/Query used as endpoint parameter")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SQL rule set (*.sql under Infrastructure):")
	fmt.Fprintln(out, "  sql-missing-header          WARN   no leading comment block")
	fmt.Fprintln(out, "  sql-undocumented-param      WARN   @-parameters absent from header comment")
	fmt.Fprintln(out, "  sql-string-concat           BLOCK  string concatenation in SQL")
	fmt.Fprintln(out, "  sql-nonparam-where          BLOCK  hardcoded literals in WHERE clauses")
	fmt.Fprintln(out)

	names := make([]string, 0, len(tables.Layers))
	for _, l := range tables.Layers {
		names = append(names, l.Name)
	}
	fmt.Fprintf(out, "Layer dependency direction: %s\n", strings.Join(names, " -> "))
	fmt.Fprintf(out, "  Domain forbidden namespaces (substring): %s\n", strings.Join(tables.DomainForbidden, ", "))
	fmt.Fprintf(out, "  Application forbidden segments (exact): %s\n", strings.Join(tables.ApplicationForbidden, ", "))
	fmt.Fprintf(out, "  Api discouraged namespaces (substring): %s\n", strings.Join(tables.APIWarn, ", "))
	fmt.Fprintf(out, "  Sensitive log terms: %d configured\n", len(tables.SensitiveTerms))
}

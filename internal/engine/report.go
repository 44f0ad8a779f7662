package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/lextech/dotnetgate/internal/finding"
	"github.com/lextech/dotnetgate/internal/layers"
	"github.com/lextech/dotnetgate/internal/rules"
)

// stderrPrefix tags every report header so the host can attribute output.
const stderrPrefix = "[lextech-dotnet]"

// sqlInjectionFooter is appended when a SQL injection-shaped finding blocks
// the edit.
const sqlInjectionFooter = "Use parameterized queries with @-prefixed parameters. Never concatenate user input into SQL strings."

// Render writes the human-readable report. An empty report writes nothing.
//
// Layout: one header naming the path (and layer, when detected), one
// indented line per diagnostic, then the fixed explanatory footers for any
// blocking category present.
func Render(w io.Writer, r finding.Report) {
	if r.Empty() {
		return
	}

	fmt.Fprintln(w, header(r))

	blocked := r.HasBlockers()
	for _, d := range r.Diagnostics {
		fmt.Fprintln(w, formatDiagnostic(d, blocked))
	}

	if blocked {
		if hasBlockingRule(r, layers.RuleLayerDependency) {
			fmt.Fprintln(w, "  "+layers.DirectionFooter)
		}
		if hasBlockingRule(r, rules.RuleSQLStringConcat) || hasBlockingRule(r, rules.RuleSQLNonParamWhere) {
			fmt.Fprintln(w, "  "+sqlInjectionFooter)
		}
	}
}

// RenderString is Render into a string, for golden comparisons.
func RenderString(r finding.Report) string {
	var b strings.Builder
	Render(&b, r)
	return b.String()
}

func header(r finding.Report) string {
	where := r.Path
	if r.Layer != "" {
		where = fmt.Sprintf("%s (%s layer)", r.Path, r.Layer)
	}
	if r.HasBlockers() {
		return fmt.Sprintf("%s BLOCKED: convention violations in %s:", stderrPrefix, where)
	}
	return fmt.Sprintf("%s Convention warnings for %s:", stderrPrefix, where)
}

// formatDiagnostic renders one finding. Severity markers only appear in
// blocked reports, where telling BLOCK from WARN matters; warn-only reports
// stay uncluttered.
func formatDiagnostic(d finding.Diagnostic, blocked bool) string {
	var b strings.Builder
	b.WriteString("  ")
	if blocked {
		fmt.Fprintf(&b, "[%s] ", d.Severity)
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, "Line %d: ", d.Line)
	}
	b.WriteString(d.Message)
	return b.String()
}

func hasBlockingRule(r finding.Report, ruleID string) bool {
	for _, d := range r.Diagnostics {
		if d.Severity == finding.SeverityBlock && d.RuleID == ruleID {
			return true
		}
	}
	return false
}

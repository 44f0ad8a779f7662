// Package rules holds the pattern rule checks.
//
// Every check is a pure function from text to diagnostics: no I/O, no shared
// state, no errors. Checks never see the file path; classification decides
// which checks run, the checks only read text. They scan lines, not syntax
// trees, and accept a bounded false-positive rate in exchange for requiring
// no language tooling.
package rules

import "strings"

// Rule identifiers, stable across releases. Diagnostics reference these.
const (
	RuleImplicitType         = "implicit-type-usage"
	RuleMissingDoc           = "missing-doc"
	RuleMissingCancellation  = "missing-cancellation-param"
	RuleNamingShape          = "naming-shape-mismatch"
	RuleDirectDomainParam    = "direct-domain-param"
	RuleLogInterpolation     = "log-interpolation"
	RuleLogSensitiveData     = "log-sensitive-data"
	RuleSQLMissingHeader     = "sql-missing-header"
	RuleSQLUndocumentedParam = "sql-undocumented-param"
	RuleSQLStringConcat      = "sql-string-concat"
	RuleSQLNonParamWhere     = "sql-nonparam-where"
)

// splitLines splits text into lines, tolerating CRLF endings.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// isCommentLine reports whether a trimmed C# line is a comment line:
// //, ///, /* or a continuation *.
func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// isStringLeadingLine reports whether a trimmed line begins inside a string
// literal. A rough heuristic, applied before the single-line checks.
func isStringLeadingLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, `"`) || strings.HasPrefix(trimmed, "'")
}

// isSQLCommentLine reports whether a trimmed SQL line is a comment line:
// --, /* or a continuation *.
func isSQLCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "--") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lextech/dotnetgate/internal/finding"
)

var (
	// @-prefixed parameter names.
	sqlParamPattern = regexp.MustCompile(`@(\w+)`)

	// Concatenation of a parameter or a string literal.
	concatParamPattern  = regexp.MustCompile(`\+\s*@`)
	concatStringPattern = regexp.MustCompile(`'\s*\+`)
	concatFuncPattern   = regexp.MustCompile(`(?i)\bCONCAT\s*\(`)

	// Equality against a quoted literal that is not a parameter.
	whereStringLiteralPattern = regexp.MustCompile(`=\s*'[^'@][^']*'`)

	// Equality against a bare numeric literal.
	whereNumericLiteralPattern = regexp.MustCompile(`=\s*(\d+)`)
)

// CheckSQLHeader flags SQL files whose first non-blank character does not
// open a comment.
func CheckSQLHeader(text string) []finding.Diagnostic {
	stripped := strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(stripped, "--") || strings.HasPrefix(stripped, "/*") {
		return nil
	}
	return []finding.Diagnostic{{
		RuleID:   RuleSQLMissingHeader,
		Severity: finding.SeverityWarn,
		Message:  "SQL file is missing a header comment block. Add a comment describing the query's purpose, parameters, and author.",
	}}
}

// CheckSQLParamDocs flags @-parameters used in the body but absent from the
// leading comment block. Built-in names in the exclusion set are ignored.
// All undocumented parameters batch into a single diagnostic.
func CheckSQLParamDocs(text string, exclusions []string) []finding.Diagnostic {
	params := map[string]bool{}
	for _, m := range sqlParamPattern.FindAllStringSubmatch(text, -1) {
		params[m[1]] = true
	}
	for _, builtin := range exclusions {
		delete(params, builtin)
	}
	if len(params) == 0 {
		return nil
	}

	commentText := strings.ToLower(leadingCommentBlock(text))

	var undocumented []string
	for param := range params {
		if !strings.Contains(commentText, strings.ToLower(param)) {
			undocumented = append(undocumented, "@"+param)
		}
	}
	if len(undocumented) == 0 {
		return nil
	}
	sort.Strings(undocumented)

	return []finding.Diagnostic{{
		RuleID:   RuleSQLUndocumentedParam,
		Severity: finding.SeverityWarn,
		Message: fmt.Sprintf("Undocumented SQL parameters: %s. Add parameter descriptions to the header comment.",
			strings.Join(undocumented, ", ")),
	}}
}

// leadingCommentBlock collects the contiguous comment lines at the top of
// the file. Blank lines inside the block are tolerated; the first code line
// ends it.
func leadingCommentBlock(text string) string {
	var block []string
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		switch {
		case isSQLCommentLine(trimmed) || strings.HasPrefix(trimmed, "*/"):
			block = append(block, trimmed)
		case trimmed == "":
			continue
		default:
			return strings.Join(block, "\n")
		}
	}
	return strings.Join(block, "\n")
}

// CheckSQLStringConcat flags concatenation patterns that build SQL from
// strings: + adjacent to @, a literal adjacent to +, CONCAT() calls, and
// embedded string.Format calls. Each finding blocks the edit.
func CheckSQLStringConcat(text string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for i, line := range splitLines(text) {
		stripped := strings.TrimSpace(line)
		if isSQLCommentLine(stripped) {
			continue
		}

		if concatParamPattern.MatchString(stripped) || concatStringPattern.MatchString(stripped) {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleSQLStringConcat,
				Severity: finding.SeverityBlock,
				Line:     i + 1,
				Message:  "String concatenation detected. Use parameterized queries with @-prefixed parameters only.",
			})
		}

		if concatFuncPattern.MatchString(stripped) {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleSQLStringConcat,
				Severity: finding.SeverityBlock,
				Line:     i + 1,
				Message:  "CONCAT() function detected in SQL. Use parameterized queries instead of building strings.",
			})
		}

		if strings.Contains(stripped, "string.Format") || strings.Contains(stripped, "String.Format") {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleSQLStringConcat,
				Severity: finding.SeverityBlock,
				Line:     i + 1,
				Message:  "string.Format detected. Use parameterized queries with @-prefixed parameters.",
			})
		}
	}

	return diags
}

// whereClauseScanner is the clause-scoped state machine for the
// non-parameterized value scan. It enters at a WHERE token and leaves at
// any clause terminator.
type whereClauseScanner struct {
	inClause bool
}

// CheckSQLNonParamWhere flags hardcoded literals compared inside WHERE
// clauses: any quoted string, and numeric values above 1 (0 and 1 pass as
// boolean flags like is_deleted = 0). Each finding blocks the edit.
func CheckSQLNonParamWhere(text string, terminators []string) []finding.Diagnostic {
	var diags []finding.Diagnostic
	var scanner whereClauseScanner

	for i, line := range splitLines(text) {
		upper := strings.ToUpper(strings.TrimSpace(line))
		if isSQLCommentLine(upper) {
			continue
		}

		if strings.Contains(upper, "WHERE") {
			scanner.inClause = true
		}
		if !scanner.inClause {
			continue
		}

		if containsAny(upper, terminators) {
			scanner.inClause = false
			continue
		}

		original := strings.TrimSpace(line)

		if whereStringLiteralPattern.MatchString(original) {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleSQLNonParamWhere,
				Severity: finding.SeverityBlock,
				Line:     i + 1,
				Message:  "Hardcoded string literal in WHERE clause. Use a @-prefixed parameter instead.",
			})
		}

		if m := whereNumericLiteralPattern.FindStringSubmatch(original); m != nil {
			value, err := strconv.Atoi(m[1])
			// A literal too wide for int is certainly above the 0/1
			// flag range.
			if err != nil || value > 1 {
				diags = append(diags, finding.Diagnostic{
					RuleID:   RuleSQLNonParamWhere,
					Severity: finding.SeverityBlock,
					Line:     i + 1,
					Message:  fmt.Sprintf("Hardcoded numeric literal (%s) in WHERE clause. Use a @-prefixed parameter instead.", m[1]),
				})
			}
		}
	}

	return diags
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package rules

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lextech/dotnetgate/internal/finding"
)

var (
	// Logger method calls: _logger.LogInformation(, Log.Warning(, logger.Write( …
	loggerCallPattern = regexp.MustCompile(`(?i)(?:_?log(?:ger)?)\s*\.\s*(?:log(?:information|warning|error|critical|debug|trace|fatal)?|information|warning|error|critical|debug|trace|fatal|verbose|write)\s*\(`)

	// Interpolated string opening as the first or a subsequent call argument.
	interpolationPattern = regexp.MustCompile(`\(\s*\$"|\(\s*\$@"|,\s*\$"|,\s*\$@"`)

	// {Placeholder} names inside message templates.
	templatePlaceholderPattern = regexp.MustCompile(`\{(\w+)\}`)

	// name: value named arguments.
	namedArgPattern = regexp.MustCompile(`\b(\w+)\s*:`)
)

// HasLoggerUsage is the cheap whole-file bail-out: content with no
// logger-shaped reference produces zero logging diagnostics without running
// either logging check.
func HasLoggerUsage(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "log") && (strings.Contains(lower, "_logger.") ||
		strings.Contains(lower, "logger.") ||
		strings.Contains(lower, "log.") ||
		strings.Contains(text, "Log."))
}

// CheckLogInterpolation flags string interpolation inside logger calls.
// Structured logging templates keep properties queryable; interpolation
// destroys them. The message template may sit on the line after the call,
// so one line of lookahead is checked too.
func CheckLogInterpolation(text string) []finding.Diagnostic {
	var diags []finding.Diagnostic
	lines := splitLines(text)

	for i, line := range lines {
		if isCommentLine(strings.TrimSpace(line)) {
			continue
		}
		if !loggerCallPattern.MatchString(line) {
			continue
		}

		if interpolationPattern.MatchString(line) {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleLogInterpolation,
				Severity: finding.SeverityWarn,
				Line:     i + 1,
				Message:  `String interpolation ($") detected in log call. Use Serilog message templates with {PropertyName} placeholders instead. Example: _logger.LogInformation("Processing order {OrderId}", orderId)`,
			})
			continue
		}

		if i+1 < len(lines) && interpolationPattern.MatchString(lines[i+1]) {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleLogInterpolation,
				Severity: finding.SeverityWarn,
				Line:     i + 2,
				Message:  `String interpolation ($") detected in multi-line log call. Use Serilog message templates with {PropertyName} placeholders instead.`,
			})
		}
	}

	return diags
}

// logCallTracker is the in-call state machine for multi-line logger calls.
// It enters on a logger-call line and leaves once the parenthesis balance
// drops to zero or below.
type logCallTracker struct {
	inCall bool
	depth  int
}

func (t *logCallTracker) enter() {
	t.inCall = true
	t.depth = 0
}

// advance feeds one line to the tracker and reports whether the line is
// still part of a logger call. The closing line itself still counts.
func (t *logCallTracker) advance(line string) bool {
	if !t.inCall {
		return false
	}
	t.depth += strings.Count(line, "(") - strings.Count(line, ")")
	if t.depth <= 0 {
		t.inCall = false
	}
	return true
}

// foldName normalizes an identifier for sensitive-term matching: NFC
// normalization first, then lowercase.
func foldName(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

// CheckLogSensitiveData flags sensitive names in logger calls: template
// placeholders like {Password} and named arguments like password: value.
// Terms match case-insensitively as substrings of the folded name.
func CheckLogSensitiveData(text string, terms []string) []finding.Diagnostic {
	var diags []finding.Diagnostic
	var tracker logCallTracker

	for i, line := range splitLines(text) {
		if isCommentLine(strings.TrimSpace(line)) {
			continue
		}

		if loggerCallPattern.MatchString(line) {
			tracker.enter()
		}
		if !tracker.advance(line) {
			continue
		}

		for _, m := range templatePlaceholderPattern.FindAllStringSubmatch(line, -1) {
			if term := matchTerm(m[1], terms); term != "" {
				diags = append(diags, finding.Diagnostic{
					RuleID:   RuleLogSensitiveData,
					Severity: finding.SeverityWarn,
					Line:     i + 1,
					Message:  fmt.Sprintf("PII-sensitive placeholder {%s} found in log call. Never log sensitive data. Redact or remove this parameter.", m[1]),
				})
			}
		}

		for _, m := range namedArgPattern.FindAllStringSubmatch(line, -1) {
			if term := matchTerm(m[1], terms); term != "" {
				diags = append(diags, finding.Diagnostic{
					RuleID:   RuleLogSensitiveData,
					Severity: finding.SeverityWarn,
					Line:     i + 1,
					Message:  fmt.Sprintf("PII-sensitive named argument '%s' found in log call. Never log sensitive data.", m[1]),
				})
			}
		}
	}

	return diags
}

// matchTerm returns the first sensitive term contained in the folded name,
// or empty when the name is clean.
func matchTerm(name string, terms []string) string {
	folded := foldName(name)
	for _, term := range terms {
		if strings.Contains(folded, term) {
			return term
		}
	}
	return ""
}

package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lextech/dotnetgate/internal/finding"
)

var (
	// 'var' followed by an identifier character.
	implicitVarPattern = regexp.MustCompile(`\bvar\s+[a-zA-Z_]`)

	// Public type declarations: class, record, struct, interface, enum.
	typeDeclPattern = regexp.MustCompile(`^public\s+(sealed\s+)?(partial\s+)?(static\s+)?(class|record|struct|interface|enum)\s+`)

	// Public method declarations. Broad on purpose; auto-properties are
	// excluded separately.
	methodDeclPattern = regexp.MustCompile(`^public\s+(sealed\s+)?(static\s+)?(override\s+)?(virtual\s+)?(async\s+)?[\w<>\[\]?,\s]+\s+\w+\s*\(`)

	// Async method declarations with a capturable name and parameter list.
	asyncMethodPattern = regexp.MustCompile(`^(public|private|protected|internal)\s+.*\basync\s+\w+.*\s+(\w+)\s*\(([^)]*)\)`)

	// Type declarations whose name decides the Command/Query shape rule.
	messageTypeDeclPattern = regexp.MustCompile(`^public\s+(sealed\s+)?(partial\s+)?(class|record|struct)\s+(\w+)`)
)

// CheckImplicitType flags 'var' declarations outside comment and
// string-leading lines. Explicit types are the house standard.
func CheckImplicitType(text string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for i, line := range splitLines(text) {
		stripped := strings.TrimLeft(line, " \t")
		if isCommentLine(stripped) || isStringLeadingLine(stripped) {
			continue
		}
		if implicitVarPattern.MatchString(line) {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleImplicitType,
				Severity: finding.SeverityWarn,
				Line:     i + 1,
				Message:  "Use explicit type instead of 'var'. Lextech standard forbids var usage.",
			})
		}
	}

	return diags
}

// docLineKind classifies one line of the backward documentation scan.
type docLineKind int

const (
	docLineSummary  docLineKind = iota // /// <summary> or /// <inheritdoc
	docLineComment                     // any other /// line
	docLineSkipped                     // blank line or [Attribute]
	docLineOther                       // anything else ends the scan
)

func classifyDocLine(trimmed string) docLineKind {
	switch {
	case strings.HasPrefix(trimmed, "/// <summary>"),
		strings.HasPrefix(trimmed, "/// <inheritdoc"):
		return docLineSummary
	case strings.HasPrefix(trimmed, "///"):
		return docLineComment
	case trimmed == "", strings.HasPrefix(trimmed, "["):
		return docLineSkipped
	default:
		return docLineOther
	}
}

// hasDocAbove scans up to four lines above a declaration for an XML doc
// comment, skipping blank lines and attributes. The scan stops at the first
// line that is none of those.
func hasDocAbove(lines []string, decl int) bool {
	for j := decl - 1; j >= 0 && j >= decl-4; j-- {
		switch classifyDocLine(strings.TrimSpace(lines[j])) {
		case docLineSummary:
			return true
		case docLineComment, docLineSkipped:
			continue
		default:
			return false
		}
	}
	return false
}

// CheckMissingDocs flags public type and method declarations without XML
// documentation.
func CheckMissingDocs(text string) []finding.Diagnostic {
	var diags []finding.Diagnostic
	lines := splitLines(text)

	for i, line := range lines {
		stripped := strings.TrimSpace(line)

		if typeDeclPattern.MatchString(stripped) && !hasDocAbove(lines, i) {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleMissingDoc,
				Severity: finding.SeverityWarn,
				Line:     i + 1,
				Message:  "Public type declaration missing XML documentation. Add /// <summary> above the declaration.",
			})
		}

		if methodDeclPattern.MatchString(stripped) {
			// Auto-properties match the method shape but need no docs.
			if strings.Contains(stripped, "{") && strings.Contains(stripped, "get;") {
				continue
			}
			if !hasDocAbove(lines, i) {
				diags = append(diags, finding.Diagnostic{
					RuleID:   RuleMissingDoc,
					Severity: finding.SeverityWarn,
					Line:     i + 1,
					Message:  "Public method missing XML documentation. Add /// <summary> above the method.",
				})
			}
		}
	}

	return diags
}

// CheckCancellationToken flags async methods whose parameter list lacks a
// CancellationToken.
func CheckCancellationToken(text string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for i, line := range splitLines(text) {
		m := asyncMethodPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name, params := m[2], m[3]
		if !strings.Contains(params, "CancellationToken") {
			diags = append(diags, finding.Diagnostic{
				RuleID:   RuleMissingCancellation,
				Severity: finding.SeverityWarn,
				Line:     i + 1,
				Message:  fmt.Sprintf("Async method '%s' is missing a CancellationToken parameter.", name),
			})
		}
	}

	return diags
}

// CheckMessageTypeShape flags Command and Query types not declared as
// 'sealed record'.
func CheckMessageTypeShape(text string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for i, line := range splitLines(text) {
		m := messageTypeDeclPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		sealed, kind, name := m[1] != "", m[3], m[4]

		if !strings.HasSuffix(name, "Command") && !strings.HasSuffix(name, "Query") {
			continue
		}
		if kind == "record" && sealed {
			continue
		}

		actual := kind
		if sealed {
			actual = "sealed " + kind
		}
		diags = append(diags, finding.Diagnostic{
			RuleID:   RuleNamingShape,
			Severity: finding.SeverityWarn,
			Line:     i + 1,
			Message:  fmt.Sprintf("'%s' should be declared as 'sealed record' but is '%s'.", name, actual),
		})
	}

	return diags
}

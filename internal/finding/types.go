package finding

// Severity classifies how a diagnostic affects the gate decision.
type Severity string

const (
	// SeverityWarn is advisory. The edit is still allowed.
	SeverityWarn Severity = "WARN"

	// SeverityBlock prevents the edit. The host is expected to undo it.
	SeverityBlock Severity = "BLOCK"
)

// Decision is the gate's verdict for one edit event.
type Decision string

const (
	// DecisionAllow lets the edit through, possibly with warnings printed.
	DecisionAllow Decision = "allow"

	// DecisionBlock rejects the edit.
	DecisionBlock Decision = "block"
)

// Diagnostic is a single finding produced by a rule check.
type Diagnostic struct {
	// RuleID identifies the rule that produced this finding,
	// e.g. "implicit-type-usage" or "sql-string-concat".
	RuleID string

	// Severity is WARN or BLOCK.
	Severity Severity

	// Line is the 1-based source line the finding refers to.
	// 0 means the finding applies to the file as a whole.
	Line int

	// Message is the human-readable explanation shown to the author.
	Message string
}

// Report is the aggregate result of checking one edit event.
type Report struct {
	// Path is the target file of the edit.
	Path string

	// Layer is the detected architecture layer ("Domain", "Application",
	// "Infrastructure", "Api"), or empty when none was detected.
	Layer string

	// Diagnostics holds every finding, in rule declaration order.
	Diagnostics []Diagnostic
}

// Decision derives the gate verdict: block if and only if at least one
// diagnostic carries SeverityBlock.
func (r Report) Decision() Decision {
	if r.HasBlockers() {
		return DecisionBlock
	}
	return DecisionAllow
}

// HasBlockers reports whether any diagnostic has SeverityBlock.
func (r Report) HasBlockers() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// Empty reports whether the report carries no diagnostics at all.
func (r Report) Empty() bool {
	return len(r.Diagnostics) == 0
}

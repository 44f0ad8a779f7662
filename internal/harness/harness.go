package harness

import (
	"fmt"

	"github.com/lextech/dotnetgate/internal/config"
	"github.com/lextech/dotnetgate/internal/engine"
	"github.com/lextech/dotnetgate/internal/event"
	"github.com/lextech/dotnetgate/internal/finding"
)

// Run builds the scenario's hook payload, parses it the way the gate would,
// and checks it against the given tables.
func Run(s *Scenario, tables *config.Tables) (finding.Report, error) {
	payload, err := s.Payload()
	if err != nil {
		return finding.Report{}, fmt.Errorf("build payload for %s: %w", s.Name, err)
	}

	ev := event.ParseBytes(payload)
	return engine.New(tables).Check(ev), nil
}

// Verify checks the report against the scenario's expectations and returns
// every mismatch. An empty slice means the scenario passed.
func Verify(s *Scenario, report finding.Report) []string {
	var failures []string

	if got := string(report.Decision()); got != s.WantDecision {
		failures = append(failures, fmt.Sprintf("decision = %s, want %s", got, s.WantDecision))
	}

	seen := map[string]bool{}
	for _, d := range report.Diagnostics {
		seen[d.RuleID] = true
	}
	for _, rule := range s.WantRules {
		if !seen[rule] {
			failures = append(failures, fmt.Sprintf("missing expected rule %s", rule))
		}
	}

	return failures
}

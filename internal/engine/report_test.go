package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lextech/dotnetgate/internal/finding"
	"github.com/lextech/dotnetgate/internal/layers"
	"github.com/lextech/dotnetgate/internal/rules"
)

func TestRender_EmptyReportWritesNothing(t *testing.T) {
	assert.Equal(t, "", RenderString(finding.Report{Path: "a.cs"}))
}

func TestRender_WarningReport(t *testing.T) {
	r := finding.Report{
		Path: "src/MyApp.Domain/Order.cs",
		Diagnostics: []finding.Diagnostic{
			{RuleID: rules.RuleImplicitType, Severity: finding.SeverityWarn, Line: 3, Message: "Use explicit types instead of 'var'."},
		},
	}

	want := "[lextech-dotnet] Convention warnings for src/MyApp.Domain/Order.cs:\n" +
		"  Line 3: Use explicit types instead of 'var'.\n"
	assert.Equal(t, want, RenderString(r))
}

func TestRender_WarningReportWithLayer(t *testing.T) {
	r := finding.Report{
		Path:  "src/MyApp.Api/OrderEndpoint.cs",
		Layer: "Api",
		Diagnostics: []finding.Diagnostic{
			{RuleID: "contract-annotation-name", Severity: finding.SeverityWarn, Message: "Endpoint missing .WithName() - required for OpenAPI operationId mapping"},
		},
	}

	out := RenderString(r)
	assert.Contains(t, out, "Convention warnings for src/MyApp.Api/OrderEndpoint.cs (Api layer):")
	// File-scoped findings carry no line prefix and warn-only reports carry
	// no severity marker.
	assert.Contains(t, out, "\n  Endpoint missing .WithName()")
	assert.NotContains(t, out, "Line ")
	assert.NotContains(t, out, "[WARN]")
}

func TestRender_BlockedReportMarksSeverities(t *testing.T) {
	r := finding.Report{
		Path:  "src/MyApp.Domain/Order.cs",
		Layer: "Domain",
		Diagnostics: []finding.Diagnostic{
			{RuleID: rules.RuleImplicitType, Severity: finding.SeverityWarn, Line: 5, Message: "Use explicit types instead of 'var'."},
			{RuleID: layers.RuleLayerDependency, Severity: finding.SeverityBlock, Line: 2, Message: "Domain layer cannot reference 'Dapper'. Domain must be pure -- no infrastructure, ORM, ASP.NET, or serialization dependencies."},
		},
	}

	want := "[lextech-dotnet] BLOCKED: convention violations in src/MyApp.Domain/Order.cs (Domain layer):\n" +
		"  [WARN] Line 5: Use explicit types instead of 'var'.\n" +
		"  [BLOCK] Line 2: Domain layer cannot reference 'Dapper'. Domain must be pure -- no infrastructure, ORM, ASP.NET, or serialization dependencies.\n" +
		"  " + layers.DirectionFooter + "\n"
	assert.Equal(t, want, RenderString(r))
}

func TestRender_SQLFooterOnBlockingSQLRule(t *testing.T) {
	r := finding.Report{
		Path: "src/MyApp.Infrastructure/q.sql",
		Diagnostics: []finding.Diagnostic{
			{RuleID: rules.RuleSQLStringConcat, Severity: finding.SeverityBlock, Line: 2, Message: "String concatenation detected. Use parameterized queries with @-prefixed parameters only."},
		},
	}

	out := RenderString(r)
	assert.Contains(t, out, "BLOCKED: convention violations in src/MyApp.Infrastructure/q.sql:")
	assert.Contains(t, out, "  Use parameterized queries with @-prefixed parameters. Never concatenate user input into SQL strings.\n")
	assert.NotContains(t, out, layers.DirectionFooter)
}

func TestRender_NoFooterForWarnOnlyRuleMatches(t *testing.T) {
	// A warn-severity layer finding must not trigger the direction footer.
	r := finding.Report{
		Path:  "src/MyApp.Api/OrderEndpoint.cs",
		Layer: "Api",
		Diagnostics: []finding.Diagnostic{
			{RuleID: layers.RuleLayerDependency, Severity: finding.SeverityWarn, Line: 1, Message: "API layer references 'MyApp.Infrastructure.Repositories'. Endpoints should dispatch via IMessageBus, not call repositories directly."},
		},
	}

	assert.NotContains(t, RenderString(r), layers.DirectionFooter)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lextech/dotnetgate/internal/config"
	"github.com/lextech/dotnetgate/internal/event"
	"github.com/lextech/dotnetgate/internal/finding"
	"github.com/lextech/dotnetgate/internal/rules"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return New(config.MustLoad())
}

func TestCheck_InertEventAllows(t *testing.T) {
	e := newEngine(t)

	testCases := []struct {
		name string
		ev   event.EditEvent
	}{
		{"no path", event.EditEvent{Tool: event.ToolWrite, Text: "var x = 1;"}},
		{"no text", event.EditEvent{Tool: event.ToolWrite, Path: "a.cs"}},
		{"zero value", event.EditEvent{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := e.Check(tc.ev)
			assert.True(t, report.Empty())
			assert.Equal(t, finding.DecisionAllow, report.Decision())
		})
	}
}

func TestCheck_UnclassifiedPathAllows(t *testing.T) {
	e := newEngine(t)

	report := e.Check(event.EditEvent{
		Tool: event.ToolWrite,
		Path: "README.md",
		Text: "var x = 'SELECT * WHERE name = ''bob''';",
	})

	assert.True(t, report.Empty())
	assert.Equal(t, finding.DecisionAllow, report.Decision())
}

func TestCheck_Deterministic(t *testing.T) {
	e := newEngine(t)

	ev := event.EditEvent{
		Tool: event.ToolWrite,
		Path: "src/MyApp.Domain/Order.cs",
		Text: "using Microsoft.EntityFrameworkCore;\n\npublic class Order\n{\n    var x = 1;\n}\n",
	}

	first := e.Check(ev)
	second := e.Check(ev)

	assert.Equal(t, first, second)
}

func TestCheck_DomainImpureUsingBlocks(t *testing.T) {
	e := newEngine(t)

	report := e.Check(event.EditEvent{
		Tool: event.ToolEdit,
		Path: "src/MyApp.Domain/Orders/Order.cs",
		Text: "using System;\nusing Microsoft.EntityFrameworkCore;\n\n/// <summary>\n/// An order.\n/// </summary>\npublic sealed class Order\n{\n}\n",
	})

	assert.Equal(t, "Domain", report.Layer)
	assert.Equal(t, finding.DecisionBlock, report.Decision())
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, 2, report.Diagnostics[0].Line)
}

func TestCheck_EndpointMissingMarkersWarnsOnly(t *testing.T) {
	e := newEngine(t)

	report := e.Check(event.EditEvent{
		Tool: event.ToolWrite,
		Path: "src/MyApp.Api/Endpoints/OrderEndpoint.cs",
		Text: "/// <summary>\n/// Order routes.\n/// </summary>\npublic sealed class OrderEndpoint\n{\n}\n",
	})

	assert.Equal(t, "Api", report.Layer)
	assert.Equal(t, finding.DecisionAllow, report.Decision())
	assert.Len(t, report.Diagnostics, 5)
	for _, d := range report.Diagnostics {
		assert.Equal(t, finding.SeverityWarn, d.Severity)
	}
}

func TestCheck_SQLInjectionShapeBlocks(t *testing.T) {
	e := newEngine(t)

	report := e.Check(event.EditEvent{
		Tool: event.ToolWrite,
		Path: "src/MyApp.Infrastructure/Queries/GetOrder.sql",
		Text: "-- Gets one order\nSELECT * FROM Orders\nWHERE Name = 'bob'\n",
	})

	assert.Equal(t, "", report.Layer)
	assert.Equal(t, finding.DecisionBlock, report.Decision())
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, rules.RuleSQLNonParamWhere, report.Diagnostics[0].RuleID)
}

func TestCheck_LoggingRulesGatedOnLoggerUsage(t *testing.T) {
	e := newEngine(t)

	// The interpolated string is only reachable by the logging rules, and
	// those require a logger call shape somewhere in the file.
	report := e.Check(event.EditEvent{
		Tool: event.ToolWrite,
		Path: "src/MyApp.Application/Render.cs",
		Text: "/// <summary>\n/// Renderer.\n/// </summary>\npublic sealed class Render\n{\n}\n",
	})

	for _, d := range report.Diagnostics {
		assert.NotEqual(t, rules.RuleLogInterpolation, d.RuleID)
		assert.NotEqual(t, rules.RuleLogSensitiveData, d.RuleID)
	}
}

func TestCheck_LayerValidationSkippedWithoutUsings(t *testing.T) {
	e := newEngine(t)

	report := e.Check(event.EditEvent{
		Tool: event.ToolWrite,
		Path: "src/MyApp.Domain/Order.cs",
		Text: "/// <summary>\n/// An order.\n/// </summary>\npublic sealed class Order\n{\n}\n",
	})

	assert.Equal(t, "Domain", report.Layer)
	assert.True(t, report.Empty())
}

func TestCheck_WarnAndBlockAggregate(t *testing.T) {
	e := newEngine(t)

	report := e.Check(event.EditEvent{
		Tool: event.ToolEdit,
		Path: "src/MyApp.Application/Handlers/Handler.cs",
		Text: "using MyApp.Infrastructure.Data;\n\n/// <summary>\n/// Handler.\n/// </summary>\npublic sealed class Handler\n{\n    var bus = Resolve();\n}\n",
	})

	assert.Equal(t, finding.DecisionBlock, report.Decision())

	var severities []finding.Severity
	for _, d := range report.Diagnostics {
		severities = append(severities, d.Severity)
	}
	assert.Contains(t, severities, finding.SeverityWarn)
	assert.Contains(t, severities, finding.SeverityBlock)
}

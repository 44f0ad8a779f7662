// Package engine runs the convention gate over one edit event.
//
// The engine is a synchronous single pass: normalize, classify, run the
// applicable checks in declaration order, aggregate. It holds only the
// read-only rule tables, so one engine value is safe to share across
// concurrent invocations without locking.
package engine

import (
	"log/slog"

	"github.com/lextech/dotnetgate/internal/classify"
	"github.com/lextech/dotnetgate/internal/config"
	"github.com/lextech/dotnetgate/internal/event"
	"github.com/lextech/dotnetgate/internal/finding"
	"github.com/lextech/dotnetgate/internal/layers"
	"github.com/lextech/dotnetgate/internal/rules"
)

// Engine evaluates edit events against the configured rule tables.
type Engine struct {
	tables *config.Tables
}

// New creates an Engine over loaded rule tables. The tables are treated as
// read-only; the engine never mutates them.
func New(tables *config.Tables) *Engine {
	return &Engine{tables: tables}
}

// Check classifies the event and runs every applicable rule check.
//
// Total and pure: for any input it produces exactly one Report and never
// fails. Inert events and unclassified paths yield the empty report, which
// decides to allow.
//
// Checks run in declaration order, so identical input always yields
// identical diagnostics in identical order.
func (e *Engine) Check(ev event.EditEvent) finding.Report {
	report := finding.Report{Path: ev.Path}

	if ev.Inert() {
		slog.Debug("inert event, nothing to check", "path", ev.Path)
		return report
	}

	cls := classify.Classify(ev.Path, e.tables)
	if cls.None() {
		slog.Debug("unclassified path, allowing", "path", ev.Path)
		return report
	}
	report.Layer = cls.Layer

	slog.Debug("event classified",
		"path", ev.Path,
		"tool", string(ev.Tool),
		"rule_set", string(cls.RuleSet),
		"endpoint", cls.Endpoint,
		"layer", cls.Layer,
	)

	var diags []finding.Diagnostic

	switch cls.RuleSet {
	case classify.RuleSetCSharp:
		diags = append(diags, e.checkCSharp(ev.Text, cls.Endpoint)...)
	case classify.RuleSetSQL:
		diags = append(diags, e.checkSQL(ev.Text)...)
	}

	if cls.Layer != "" {
		if usings := layers.ExtractUsings(ev.Text); len(usings) > 0 {
			diags = append(diags, layers.Validate(cls.Layer, usings, e.tables)...)
		}
	}

	report.Diagnostics = diags

	slog.Debug("check complete",
		"path", ev.Path,
		"diagnostics", len(report.Diagnostics),
		"decision", string(report.Decision()),
	)

	return report
}

// checkCSharp runs the C# rule set: coding standards, logging hygiene, and
// (for endpoint files) contract annotations.
func (e *Engine) checkCSharp(text string, endpoint bool) []finding.Diagnostic {
	var diags []finding.Diagnostic

	diags = append(diags, rules.CheckImplicitType(text)...)
	diags = append(diags, rules.CheckMissingDocs(text)...)
	diags = append(diags, rules.CheckCancellationToken(text)...)
	diags = append(diags, rules.CheckMessageTypeShape(text)...)

	if rules.HasLoggerUsage(text) {
		diags = append(diags, rules.CheckLogInterpolation(text)...)
		diags = append(diags, rules.CheckLogSensitiveData(text, e.tables.SensitiveTerms)...)
	}

	if endpoint {
		diags = append(diags, rules.CheckContractMarkers(text, e.tables.RequiredMarkers)...)
		diags = append(diags, rules.CheckDirectDomainParam(text)...)
	}

	return diags
}

// checkSQL runs the SQL rule set: format warnings first, then the blocking
// injection-shaped checks.
func (e *Engine) checkSQL(text string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	diags = append(diags, rules.CheckSQLHeader(text)...)
	diags = append(diags, rules.CheckSQLParamDocs(text, e.tables.ParamExclusions)...)
	diags = append(diags, rules.CheckSQLStringConcat(text)...)
	diags = append(diags, rules.CheckSQLNonParamWhere(text, e.tables.ClauseTerminators)...)

	return diags
}

// Package classify maps file paths to rule sets and architecture layers.
//
// Classification is a pure function of the path. Content never influences
// it, and an unclassified path short-circuits the whole gate to allow.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/lextech/dotnetgate/internal/config"
)

// RuleSet identifies the group of checks applicable to a file.
type RuleSet string

const (
	// RuleSetNone means no checks apply.
	RuleSetNone RuleSet = ""

	// RuleSetCSharp covers .cs files: coding standards, logging hygiene,
	// and (for endpoint files) contract annotations.
	RuleSetCSharp RuleSet = "csharp"

	// RuleSetSQL covers .sql files under an infrastructure path segment.
	RuleSetSQL RuleSet = "sql"
)

// Classification is the result of classifying one path.
type Classification struct {
	// RuleSet selects the applicable checks, or RuleSetNone.
	RuleSet RuleSet

	// Endpoint marks C# files whose basename contains "Endpoint",
	// enabling the contract-annotation checks.
	Endpoint bool

	// Layer is the detected architecture layer name, or empty.
	Layer string
}

// None reports whether neither a rule set nor a layer was detected.
func (c Classification) None() bool {
	return c.RuleSet == RuleSetNone && c.Layer == ""
}

// Classify determines the rule set and layer for a path.
//
// Rule-set selection is extension-suffix based. SQL files additionally
// require an "Infrastructure"/"infrastructure" path segment marker; loose
// SQL scripts elsewhere are not the gate's concern. Layer detection walks
// the configured layer patterns in order; the first substring match wins.
func Classify(path string, tables *config.Tables) Classification {
	var c Classification

	switch {
	case strings.HasSuffix(path, ".cs"):
		c.RuleSet = RuleSetCSharp
		c.Endpoint = strings.Contains(filepath.Base(path), "Endpoint")

	case strings.HasSuffix(path, ".sql"):
		if strings.Contains(path, "Infrastructure") || strings.Contains(path, "infrastructure") {
			c.RuleSet = RuleSetSQL
		}
	}

	// Layer rules only apply to C# source; a .sql or unknown file has no
	// using directives to validate.
	if c.RuleSet == RuleSetCSharp {
		c.Layer = detectLayer(path, tables.Layers)
	}

	return c
}

// detectLayer scans the path for the configured layer spellings.
// First match wins; matching is case-sensitive.
func detectLayer(path string, layers []config.LayerPatterns) string {
	for _, layer := range layers {
		for _, pattern := range layer.Patterns {
			if strings.Contains(path, pattern) {
				return layer.Name
			}
		}
	}
	return ""
}

// Package layers validates using directives against the clean-architecture
// dependency direction:
//
//	Domain (pure) -> Application -> Infrastructure -> Api
//
// Only the edges that must not reference outward are checked: Domain and
// Application block, Api warns, Infrastructure has no outbound restriction.
// There is no reachability solver; each file is judged on its own imports.
package layers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lextech/dotnetgate/internal/config"
	"github.com/lextech/dotnetgate/internal/finding"
)

// RuleLayerDependency identifies diagnostics produced by this validator.
const RuleLayerDependency = "layer-dependency"

// DirectionFooter is appended to blocked reports so the author sees the
// canonical direction, not just the individual violation.
const DirectionFooter = "Dependency direction: Domain (pure) -> Application -> Infrastructure -> API. Inner layers must not reference outer layers."

var (
	usingPattern      = regexp.MustCompile(`^using\s+([\w.]+)\s*;`)
	usingAliasPattern = regexp.MustCompile(`^using\s+\w+\s*=\s*([\w.]+)\s*;`)
)

// Using is one extracted using directive.
type Using struct {
	Line      int
	Namespace string
}

// ExtractUsings collects every using directive with its 1-based line
// number, covering both the direct and the aliased form.
func ExtractUsings(text string) []Using {
	var usings []Using

	for i, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if m := usingPattern.FindStringSubmatch(trimmed); m != nil {
			usings = append(usings, Using{Line: i + 1, Namespace: m[1]})
		}
		if m := usingAliasPattern.FindStringSubmatch(trimmed); m != nil {
			usings = append(usings, Using{Line: i + 1, Namespace: m[1]})
		}
	}

	return usings
}

// Validate applies the per-layer namespace policy to extracted usings.
// Unknown layers and Infrastructure produce no diagnostics.
func Validate(layer string, usings []Using, tables *config.Tables) []finding.Diagnostic {
	switch layer {
	case "Domain":
		return validateDomain(usings, tables.DomainForbidden)
	case "Application":
		return validateApplication(usings, tables.ApplicationForbidden)
	case "Api":
		return validateAPI(usings, tables.APIWarn)
	default:
		return nil
	}
}

// validateDomain blocks any namespace substring-matching the impure list.
// Domain depends on nothing outside itself.
func validateDomain(usings []Using, forbidden []string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for _, u := range usings {
		for _, marker := range forbidden {
			if strings.Contains(u.Namespace, marker) {
				diags = append(diags, finding.Diagnostic{
					RuleID:   RuleLayerDependency,
					Severity: finding.SeverityBlock,
					Line:     u.Line,
					Message:  fmt.Sprintf("Domain layer cannot reference '%s'. Domain must be pure -- no infrastructure, ORM, ASP.NET, or serialization dependencies.", u.Namespace),
				})
				break
			}
		}
	}

	return diags
}

// validateApplication blocks namespaces carrying a forbidden token as an
// exact dot-delimited segment. Substring matches do not count:
// "Foo.InfrastructureHelpers" passes, "Foo.Infrastructure.Data" blocks.
// The asymmetry with Domain's substring match is deliberate and inherited.
func validateApplication(usings []Using, forbidden []string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for _, u := range usings {
		segments := strings.Split(u.Namespace, ".")
		for _, token := range forbidden {
			if containsSegment(segments, token) {
				diags = append(diags, finding.Diagnostic{
					RuleID:   RuleLayerDependency,
					Severity: finding.SeverityBlock,
					Line:     u.Line,
					Message:  fmt.Sprintf("Application layer cannot reference '%s'. Application must not depend on Infrastructure. Use interfaces defined in Application.", u.Namespace),
				})
				break
			}
		}
	}

	return diags
}

// validateAPI warns on repository and persistence markers. Endpoints should
// dispatch through the message bus, not call data access directly; this is
// advisory, never blocking.
func validateAPI(usings []Using, warn []string) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for _, u := range usings {
		for _, marker := range warn {
			if strings.Contains(u.Namespace, marker) {
				diags = append(diags, finding.Diagnostic{
					RuleID:   RuleLayerDependency,
					Severity: finding.SeverityWarn,
					Line:     u.Line,
					Message:  fmt.Sprintf("API layer references '%s'. Endpoints should dispatch via IMessageBus, not call repositories directly.", u.Namespace),
				})
				break
			}
		}
	}

	return diags
}

func containsSegment(segments []string, token string) bool {
	for _, s := range segments {
		if s == token {
			return true
		}
	}
	return false
}

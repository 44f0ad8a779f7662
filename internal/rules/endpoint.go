package rules

import (
	"regexp"
	"strings"

	"github.com/lextech/dotnetgate/internal/config"
	"github.com/lextech/dotnetgate/internal/finding"
)

// A Command or Query type used directly as an endpoint parameter:
// (CreateOrderCommand command, …) or (OrderQuery query).
var directParamPattern = regexp.MustCompile(`\(\s*\w*(Command|Query)\s+\w+\s*[,)]`)

// CheckContractMarkers flags endpoint files missing required builder calls.
// Each marker is a whole-file substring presence check; one diagnostic per
// missing marker, in table order.
func CheckContractMarkers(text string, markers []config.Marker) []finding.Diagnostic {
	var diags []finding.Diagnostic

	for _, marker := range markers {
		present := false
		for _, spelling := range marker.Any {
			if strings.Contains(text, spelling) {
				present = true
				break
			}
		}
		if !present {
			diags = append(diags, finding.Diagnostic{
				RuleID:   marker.ID,
				Severity: finding.SeverityWarn,
				Message:  marker.Message,
			})
		}
	}

	return diags
}

// CheckDirectDomainParam flags endpoint handlers that take a Command or
// Query type directly instead of a contract DTO.
func CheckDirectDomainParam(text string) []finding.Diagnostic {
	if !directParamPattern.MatchString(text) {
		return nil
	}
	return []finding.Diagnostic{{
		RuleID:   RuleDirectDomainParam,
		Severity: finding.SeverityWarn,
		Message:  "Consider using a generated DTO from the OpenAPI contract instead of the command/query directly",
	}}
}

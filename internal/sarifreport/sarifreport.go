// Package sarifreport reduces SARIF reports emitted by linters into the flat
// violation records the engine works with.
package sarifreport

import (
	"encoding/json"
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/lint-studio/lint-studio/pkg/shared"
)

// FromBytes parses raw SARIF JSON.
func FromBytes(data []byte) (*sarif.Report, error) {
	var report sarif.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode SARIF report: %w", err)
	}
	return &report, nil
}

// Violations flattens every result of every run into violation records.
// Suppressed results are skipped.
func Violations(report *sarif.Report) []shared.Violation {
	var violations []shared.Violation
	for _, run := range report.Runs {
		for _, result := range run.Results {
			if len(result.Suppressions) > 0 {
				continue
			}
			violations = append(violations, toViolation(result))
		}
	}
	return violations
}

func toViolation(result *sarif.Result) shared.Violation {
	v := shared.Violation{Severity: "warning"}
	if result.RuleID != nil {
		v.RuleID = *result.RuleID
	}
	if result.Level != nil && *result.Level != "" {
		v.Severity = normalizeLevel(*result.Level)
	}
	if result.Message.Text != nil {
		v.Message = *result.Message.Text
	}
	if len(result.Locations) > 0 {
		if phys := result.Locations[0].PhysicalLocation; phys != nil {
			if phys.ArtifactLocation != nil && phys.ArtifactLocation.URI != nil {
				v.FilePath = *phys.ArtifactLocation.URI
			}
			if phys.Region != nil && phys.Region.StartLine != nil {
				v.Line = *phys.Region.StartLine
			}
		}
	}
	return v
}

// normalizeLevel maps SARIF levels onto the two severities the engine knows.
func normalizeLevel(level string) string {
	switch level {
	case "error":
		return "error"
	default:
		return "warning"
	}
}

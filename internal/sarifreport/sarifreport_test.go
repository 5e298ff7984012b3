package sarifreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSarif = `{
  "version": "2.1.0",
  "runs": [
    {
      "tool": {"driver": {"name": "swiftlint"}},
      "results": [
        {
          "ruleId": "force_cast",
          "level": "error",
          "message": {"text": "Force casts should be avoided"},
          "locations": [
            {
              "physicalLocation": {
                "artifactLocation": {"uri": "Sources/App/Main.swift"},
                "region": {"startLine": 12}
              }
            }
          ]
        },
        {
          "ruleId": "todo",
          "level": "note",
          "message": {"text": "TODOs should be resolved"},
          "locations": [
            {
              "physicalLocation": {
                "artifactLocation": {"uri": "Sources/App/Util.swift"},
                "region": {"startLine": 3}
              }
            }
          ]
        },
        {
          "ruleId": "line_length",
          "level": "warning",
          "message": {"text": "Line too long"},
          "suppressions": [{"kind": "inSource"}]
        }
      ]
    }
  ]
}`

func TestViolationsFromSarif(t *testing.T) {
	report, err := FromBytes([]byte(sampleSarif))
	require.NoError(t, err)

	violations := Violations(report)
	require.Len(t, violations, 2, "suppressed results must be skipped")

	first := violations[0]
	assert.Equal(t, "force_cast", first.RuleID)
	assert.Equal(t, "error", first.Severity)
	assert.Equal(t, "Sources/App/Main.swift", first.FilePath)
	assert.Equal(t, 12, first.Line)
	assert.Equal(t, "Force casts should be avoided", first.Message)

	second := violations[1]
	assert.Equal(t, "todo", second.RuleID)
	assert.Equal(t, "warning", second.Severity, "non-error levels normalize to warning")
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	_, err := FromBytes([]byte("not json"))
	require.Error(t, err)
}

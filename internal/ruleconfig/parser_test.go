package ruleconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
)

const sampleConfig = `# Project lint settings
disabled_rules:
  - line_length
  - todo
opt_in_rules:
  - empty_count
included:
  - Sources
excluded:
  - Carthage
  - Pods
reporter: xcode
warning_threshold: 10
strict: true
rules:
  force_cast:
    enabled: true
    severity: error
  identifier_name:
    enabled: true
    severity: warning
    parameters:
      min_length: 3
      max_length: 40
      allowed_symbols:
        - "_"
      validates_start_with_lowercase: true
`

func TestParseSampleConfig(t *testing.T) {
	doc, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"line_length", "todo"}, doc.DisabledRules)
	assert.Equal(t, []string{"empty_count"}, doc.OptInRules)
	assert.Equal(t, []string{"Sources"}, doc.Included)
	assert.Equal(t, []string{"Carthage", "Pods"}, doc.Excluded)
	assert.Equal(t, "xcode", doc.Reporter)
	require.NotNil(t, doc.WarningThreshold)
	assert.Equal(t, 10, *doc.WarningThreshold)
	require.NotNil(t, doc.Strict)
	assert.True(t, *doc.Strict)

	assert.Equal(t, []string{
		KeyDisabledRules, KeyOptInRules, KeyIncluded, KeyExcluded,
		KeyReporter, KeyWarningThreshold, KeyStrict, KeyRules,
	}, doc.KeyOrder)
	assert.Equal(t, []string{"force_cast", "identifier_name"}, doc.RuleOrder)

	forceCast := doc.Rules["force_cast"]
	assert.True(t, forceCast.Enabled)
	require.NotNil(t, forceCast.Severity)
	assert.Equal(t, SeverityError, *forceCast.Severity)

	identifierName := doc.Rules["identifier_name"]
	minLength, ok := identifierName.Params["min_length"]
	require.True(t, ok)
	assert.Equal(t, KindInt, minLength.Kind())
	assert.Equal(t, int64(3), minLength.Int())

	symbols, ok := identifierName.Params["allowed_symbols"]
	require.True(t, ok)
	require.Equal(t, KindList, symbols.Kind())
	require.Len(t, symbols.List(), 1)
	assert.Equal(t, "_", symbols.List()[0].Str())

	validates, ok := identifierName.Params["validates_start_with_lowercase"]
	require.True(t, ok)
	assert.Equal(t, KindBool, validates.Kind())
	assert.True(t, validates.Bool())

	assert.Equal(t, "Project lint settings", doc.Comments[KeyDisabledRules])
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "broken syntax",
			input: "rules:\n  force_cast:\n enabled: [true\n",
		},
		{
			name:  "top level sequence",
			input: "- one\n- two\n",
		},
		{
			name:  "duplicate top-level key",
			input: "strict: true\nreporter: xcode\nstrict: false\n",
		},
		{
			name:  "reporter not a string",
			input: "reporter: 42\n",
		},
		{
			name:  "warning_threshold not an integer",
			input: "warning_threshold: soon\n",
		},
		{
			name:  "strict not a boolean",
			input: "strict: definitely\n",
		},
		{
			name:  "disabled_rules not a list",
			input: "disabled_rules: line_length\n",
		},
		{
			name:  "rules not a mapping",
			input: "rules:\n  - force_cast\n",
		},
		{
			name:  "unknown rule sub-key",
			input: "rules:\n  force_cast:\n    enable: true\n",
		},
		{
			name:  "timestamp parameter value",
			input: "rules:\n  force_cast:\n    parameters:\n      since: 2001-12-14\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)
			var parseErr *scerrors.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Rules)
	assert.Empty(t, doc.KeyOrder)
}

func TestParseUnknownTopLevelKeyIsPreserved(t *testing.T) {
	input := "custom_rules:\n  pirates_beat_ninjas:\n    regex: \"ninja\"\nstrict: false\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"custom_rules", KeyStrict}, doc.KeyOrder)
	custom, ok := doc.Unknown["custom_rules"]
	require.True(t, ok)
	require.Equal(t, KindMap, custom.Kind())
	rule, ok := custom.Lookup("pirates_beat_ninjas")
	require.True(t, ok)
	regex, ok := rule.Lookup("regex")
	require.True(t, ok)
	assert.Equal(t, "ninja", regex.Str())
}

func TestParseNullUnknownKeyIsPreserved(t *testing.T) {
	doc, err := Parse([]byte("custom_reporter_options:\nstrict: true\n"))
	require.NoError(t, err)

	v, ok := doc.Unknown["custom_reporter_options"]
	require.True(t, ok)
	assert.Equal(t, KindNull, v.Kind())
	assert.Equal(t, []string{"custom_reporter_options", KeyStrict}, doc.KeyOrder)

	out := Serialize(doc)
	reparsed, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, doc.Equal(reparsed))
}

func TestParseRuleCommentIsKept(t *testing.T) {
	input := "rules:\n  # no force casts in production code\n  force_cast:\n    enabled: true\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "no force casts in production code", doc.Comments[KeyRules])

	out := string(Serialize(doc))
	assert.Contains(t, out, "# no force casts in production code")

	reparsed, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.True(t, doc.Equal(reparsed))
}

func TestParseListItemCommentIsKept(t *testing.T) {
	input := "disabled_rules:\n  # legacy exclusions\n  - todo\nstrict: true\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "legacy exclusions", doc.Comments[KeyDisabledRules])

	out := string(Serialize(doc))
	assert.Contains(t, out, "# legacy exclusions")

	reparsed, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.True(t, doc.Equal(reparsed))
}

func TestParseBareRuleEntry(t *testing.T) {
	doc, err := Parse([]byte("rules:\n  trailing_whitespace:\n"))
	require.NoError(t, err)
	entry, ok := doc.Rules["trailing_whitespace"]
	require.True(t, ok)
	assert.True(t, entry.Enabled)
	assert.Nil(t, entry.Severity)
	assert.Empty(t, entry.Params)
}

func TestParseTrailingCommentAnchorsToDocument(t *testing.T) {
	input := "strict: true\n\n# remember to re-run the linter\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "remember to re-run the linter", doc.Comments[DocumentAnchor])
}

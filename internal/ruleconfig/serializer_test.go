package ruleconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := Parse([]byte(text))
	require.NoError(t, err)
	return doc
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "sample config",
			input: sampleConfig,
		},
		{
			name:  "empty document",
			input: "",
		},
		{
			name:  "single flag",
			input: "strict: true\n",
		},
		{
			name: "comments on several keys",
			input: "# strictness first\nstrict: true\n# what we report\nreporter: json\n" +
				"rules:\n  force_try:\n    enabled: false\n\n# trailing note\n",
		},
		{
			name:  "unknown keys",
			input: "custom_rules:\n  no_foo:\n    regex: foo\n    match_kinds: [comment, identifier]\nstrict: false\n",
		},
		{
			name: "parameter unions",
			input: "rules:\n  line_length:\n    enabled: true\n    parameters:\n" +
				"      warning: 120\n      error: 200.5\n      ignores_urls: true\n      note: \"keep it short\"\n" +
				"      levels:\n        nested: [1, 2, 3]\n",
		},
		{
			name:  "quoted numeric string stays a string",
			input: "reporter: \"123\"\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.input)
			again := mustParse(t, string(Serialize(doc)))
			assert.True(t, doc.Equal(again), "round trip changed the document\nfirst: %+v\nsecond: %+v", doc, again)
		})
	}
}

func TestSerializeIsStableAfterFirstPass(t *testing.T) {
	doc := mustParse(t, sampleConfig)
	first := Serialize(doc)
	second := Serialize(mustParse(t, string(first)))
	assert.Equal(t, string(first), string(second))
}

func TestSerializeKeepsKeyOrder(t *testing.T) {
	doc := mustParse(t, "strict: true\nreporter: xcode\nwarning_threshold: 3\n")
	out := string(Serialize(doc))
	strictIdx := indexOf(t, out, "strict:")
	reporterIdx := indexOf(t, out, "reporter:")
	thresholdIdx := indexOf(t, out, "warning_threshold:")
	assert.Less(t, strictIdx, reporterIdx)
	assert.Less(t, reporterIdx, thresholdIdx)
}

func TestSerializeDropsCommentsOfRemovedKeys(t *testing.T) {
	doc := mustParse(t, "# reporting style\nreporter: xcode\nstrict: true\n")
	require.Equal(t, "reporting style", doc.Comments[KeyReporter])

	doc.Reporter = ""
	doc.KeyOrder = removeString(doc.KeyOrder, KeyReporter)

	out := string(Serialize(doc))
	assert.NotContains(t, out, "reporting style")
	assert.Contains(t, out, "strict: true")
}

func TestSerializeIntegralFloatStaysFloat(t *testing.T) {
	doc := NewDocument()
	doc.SetRule("type_body_length", RuleEntry{
		Enabled: true,
		Params:  map[string]Value{"ratio": FloatValue(2.0)},
	})

	again := mustParse(t, string(Serialize(doc)))
	ratio, ok := again.Rules["type_body_length"].Params["ratio"]
	require.True(t, ok)
	assert.Equal(t, KindFloat, ratio.Kind())
	assert.Equal(t, 2.0, ratio.Float())
}

func TestSerializeHandBuiltDocument(t *testing.T) {
	sev := SeverityError
	doc := NewDocument()
	doc.SetRule("force_cast", RuleEntry{Enabled: true, Severity: &sev})
	doc.DisabledRules = []string{"todo"}
	doc.ensureKey(KeyDisabledRules)

	again := mustParse(t, string(Serialize(doc)))
	assert.True(t, doc.Equal(again))
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	t.Fatalf("%q not found in output", needle)
	return -1
}

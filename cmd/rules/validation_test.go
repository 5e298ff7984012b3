package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRulesArgsResolvesDirectoryTarget(t *testing.T) {
	dir := t.TempDir()
	opts := RunOptionsRules{ConfigFile: dir}

	require.NoError(t, validateRulesArgs(&opts, "force_cast"))
	assert.Equal(t, filepath.Join(dir, ".swiftlint.yml"), opts.ConfigFile,
		"a directory target must resolve to its default configuration file")
}

func TestValidateRulesArgsKeepsFileTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	opts := RunOptionsRules{ConfigFile: path}

	require.NoError(t, validateRulesArgs(&opts, "force_cast"))
	assert.Equal(t, path, opts.ConfigFile)
}

func TestValidateRulesArgsErrors(t *testing.T) {
	testCases := []struct {
		name   string
		opts   RunOptionsRules
		ruleID string
	}{
		{name: "missing rule id", opts: RunOptionsRules{ConfigFile: ".swiftlint.yml"}, ruleID: ""},
		{name: "empty file flag", opts: RunOptionsRules{}, ruleID: "force_cast"},
		{name: "unknown severity", opts: RunOptionsRules{ConfigFile: ".swiftlint.yml", Severity: "fatal"}, ruleID: "force_cast"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, validateRulesArgs(&tc.opts, tc.ruleID))
		})
	}
}

func TestValidateRulesArgsAcceptsKnownSeverities(t *testing.T) {
	for _, severity := range []string{"", "warning", "error"} {
		opts := RunOptionsRules{ConfigFile: ".swiftlint.yml", Severity: severity}
		assert.NoError(t, validateRulesArgs(&opts, "force_cast"))
	}
}

package saferules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRuleIDsFromArgs(t *testing.T) {
	dir := t.TempDir()
	opts := RunOptionsSafeRules{ConfigFile: dir, WorkspaceRoot: dir}

	ids, err := resolveRuleIDs(&opts, []string{"force_cast", "todo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"force_cast", "todo"}, ids)
	assert.Equal(t, filepath.Join(dir, ".swiftlint.yml"), opts.ConfigFile,
		"a directory target must resolve to its default configuration file")
}

func TestResolveRuleIDsFromFile(t *testing.T) {
	dir := t.TempDir()
	rulesFile := filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(rulesFile, []byte("force_cast\n\n# comment\ntodo\n"), 0644))

	opts := RunOptionsSafeRules{ConfigFile: dir, WorkspaceRoot: dir, RulesFile: rulesFile}
	ids, err := resolveRuleIDs(&opts, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"force_cast", "todo"}, ids)
}

func TestResolveRuleIDsErrors(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name string
		opts RunOptionsSafeRules
		args []string
	}{
		{name: "empty file flag", opts: RunOptionsSafeRules{WorkspaceRoot: dir}, args: []string{"todo"}},
		{name: "missing workspace", opts: RunOptionsSafeRules{ConfigFile: dir, WorkspaceRoot: filepath.Join(dir, "absent")}, args: []string{"todo"}},
		{name: "no candidates at all", opts: RunOptionsSafeRules{ConfigFile: dir, WorkspaceRoot: dir}},
		{name: "args and rules-file together", opts: RunOptionsSafeRules{ConfigFile: dir, WorkspaceRoot: dir, RulesFile: "rules.txt"}, args: []string{"todo"}},
		{name: "rules-file is a directory", opts: RunOptionsSafeRules{ConfigFile: dir, WorkspaceRoot: dir, RulesFile: dir}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolveRuleIDs(&tc.opts, tc.args)
			assert.Error(t, err)
		})
	}
}

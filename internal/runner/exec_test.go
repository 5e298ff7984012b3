package runner

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lint-studio/lint-studio/pkg/shared"
	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
)

const fakeReport = `[
  {"rule_id": "force_cast", "file": "Sources/A.swift", "line": 5, "severity": "error", "reason": "Force casts should be avoided"},
  {"rule_id": "todo", "file": "Sources/B.swift", "line": 1, "severity": "warning", "reason": "TODOs should be resolved"}
]`

// writeFakeLinter drops an executable script that prints a canned report and
// exits with the given code.
func writeFakeLinter(t *testing.T, output string, exitCode int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fakelint")
	script := "#!/bin/sh\ncat <<'EOF'\n" + output + "\nEOF\nexit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestRunMissingBinary(t *testing.T) {
	r := NewExecRunner(filepath.Join(t.TempDir(), "no-such-linter"), hclog.NewNullLogger())

	result, err := r.Run(shared.LintRequest{ConfigPath: "x.yml", WorkspaceRoot: t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, "FAILED", result.Status)

	var simErr *scerrors.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, scerrors.RunnerNotFound, simErr.Kind)
}

func TestRunParsesJSONReport(t *testing.T) {
	binary := writeFakeLinter(t, fakeReport, 0)
	r := NewExecRunner(binary, hclog.NewNullLogger())

	result, err := r.Run(shared.LintRequest{ConfigPath: "x.yml", WorkspaceRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "OK", result.Status)
	require.Len(t, result.Violations, 2)
	assert.Equal(t, "force_cast", result.Violations[0].RuleID)
	assert.Equal(t, "Sources/A.swift", result.Violations[0].FilePath)
	assert.Equal(t, 5, result.Violations[0].Line)
}

func TestRunToleratesViolationExitCode(t *testing.T) {
	// Linters exit 2 when findings exist; the run still counts as successful.
	binary := writeFakeLinter(t, fakeReport, 2)
	r := NewExecRunner(binary, hclog.NewNullLogger())

	result, err := r.Run(shared.LintRequest{ConfigPath: "x.yml", WorkspaceRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Len(t, result.Violations, 2)
}

func TestRunEmptyOutputMeansNoViolations(t *testing.T) {
	binary := writeFakeLinter(t, "", 0)
	r := NewExecRunner(binary, hclog.NewNullLogger())

	result, err := r.Run(shared.LintRequest{ConfigPath: "x.yml", WorkspaceRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Violations)
}

func TestRunRejectsGarbageReport(t *testing.T) {
	binary := writeFakeLinter(t, "definitely not json", 0)
	r := NewExecRunner(binary, hclog.NewNullLogger())

	_, err := r.Run(shared.LintRequest{ConfigPath: "x.yml", WorkspaceRoot: t.TempDir()})
	require.Error(t, err)

	var simErr *scerrors.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, scerrors.ExecutionFailed, simErr.Kind)
}

func TestRunContextCancelKillsProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slowlint")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nsleep 30\n"), 0755))
	r := NewExecRunner(path, hclog.NewNullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := r.RunContext(ctx, shared.LintRequest{ConfigPath: "x.yml", WorkspaceRoot: t.TempDir(), TimeoutSeconds: 60})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second, "cancel must kill the linter, not wait out the timeout")

	var simErr *scerrors.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, scerrors.Timeout, simErr.Kind)
}

func TestParseJSONReport(t *testing.T) {
	violations, err := parseJSONReport([]byte(fakeReport))
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, "todo", violations[1].RuleID)
	assert.Equal(t, "TODOs should be resolved", violations[1].Message)

	violations, err = parseJSONReport([]byte("   \n"))
	require.NoError(t, err)
	assert.Nil(t, violations)
}

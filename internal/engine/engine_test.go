package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/internal/simulate"
	"github.com/lint-studio/lint-studio/pkg/shared"
)

const engineSample = `disabled_rules:
  - force_cast
reporter: xcode
`

func newTestEngine(t *testing.T, runner shared.LintRunner) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".swiftlint.yml")
	require.NoError(t, os.WriteFile(path, []byte(engineSample), 0644))
	e := New(path, runner, filepath.Join(dir, "scratch"), hclog.NewNullLogger(), simulate.Options{})
	return e, path
}

func TestDocumentReturnsDeepCopy(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	first, err := e.Document()
	require.NoError(t, err)
	first.Reporter = "json"
	first.DisabledRules = nil

	second, err := e.Document()
	require.NoError(t, err)
	assert.Equal(t, "xcode", second.Reporter, "mutating a returned copy must not leak into the cache")
	assert.Equal(t, []string{"force_cast"}, second.DisabledRules)
}

func TestEnableRuleSavesAndReportsDiff(t *testing.T) {
	e, path := newTestEngine(t, nil)

	d, err := e.EnableRule("force_cast", nil, false)
	require.NoError(t, err)
	assert.True(t, d.HasChanges())
	assert.Equal(t, []string{"force_cast"}, d.Added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := ruleconfig.Parse(data)
	require.NoError(t, err)
	assert.True(t, doc.IsRuleEnabled("force_cast"))
	assert.NotContains(t, doc.DisabledRules, "force_cast")

	backups := e.ListBackups()
	require.Len(t, backups, 1, "a mutating save takes one backup")
}

func TestSaveEmitsChangeEvent(t *testing.T) {
	e, path := newTestEngine(t, nil)
	events := e.Subscribe()

	doc, err := e.Document()
	require.NoError(t, err)
	severity := ruleconfig.SeverityError
	doc.EnableRule("empty_count", &severity, true)
	_, err = e.Save(doc, true)
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, path, ev.Path)
		assert.Equal(t, []string{"empty_count"}, ev.Diff.Added)
		assert.WithinDuration(t, time.Now(), ev.Timestamp, time.Minute)
	default:
		t.Fatal("expected a change event after a successful save")
	}
}

func TestSaveInvalidDocumentEmitsNothing(t *testing.T) {
	e, path := newTestEngine(t, nil)
	events := e.Subscribe()

	doc, err := e.Document()
	require.NoError(t, err)
	bad := ruleconfig.Severity("fatal")
	doc.SetRule("line_length", ruleconfig.RuleEntry{Enabled: true, Severity: &bad})
	_, err = e.Save(doc, true)
	require.Error(t, err)

	select {
	case <-events:
		t.Fatal("a failed save must not notify subscribers")
	default:
	}

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, engineSample, string(data), "a failed save must leave the file untouched")
	assert.Empty(t, e.ListBackups())
}

func TestRestoreBackupRoundTrip(t *testing.T) {
	e, path := newTestEngine(t, nil)

	_, err := e.EnableRule("force_cast", nil, false)
	require.NoError(t, err)

	backups := e.ListBackups()
	require.Len(t, backups, 1)

	events := e.Subscribe()
	require.NoError(t, e.RestoreBackup(backups[0]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, engineSample, string(data))

	select {
	case ev := <-events:
		assert.Equal(t, []string{"force_cast"}, ev.Diff.Removed)
	default:
		t.Fatal("restore must notify subscribers")
	}

	// The restore snapshots the pre-restore content first.
	assert.Len(t, e.ListBackups(), 2)
}

func TestFindBackupUnknownTimestamp(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	_, err := e.FindBackup(42)
	require.Error(t, err)
}

func TestSimulateRuleWithoutRunner(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	_, err := e.SimulateRule(context.Background(), "force_cast", t.TempDir(), false)
	require.Error(t, err)
}

type countingRunner struct {
	calls int
}

func (r *countingRunner) Run(req shared.LintRequest) (shared.LintResult, error) {
	r.calls++
	return shared.LintResult{Status: "OK"}, nil
}

func TestSimulateRuleDelegatesToRunner(t *testing.T) {
	runner := &countingRunner{}
	e, _ := newTestEngine(t, runner)

	result, err := e.SimulateRule(context.Background(), "force_cast", t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ViolationCount)
	assert.Equal(t, 1, runner.calls)
}

// Package simulate answers "what would change if this rule were enabled"
// without ever touching the real configuration file. Candidate configurations
// live in uniquely-named scratch directories and are fed to the external
// lint-runner collaborator.
package simulate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/pkg/shared"
	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
)

// scratchConfigName is the file name the candidate configuration is written
// under inside its scratch directory.
const scratchConfigName = "candidate.yml"

// Result is the reduced outcome of simulating one rule. Produced once per
// simulation call, never persisted, never shared across calls.
type Result struct {
	RuleID         string
	ViolationCount int
	Violations     []shared.Violation
	AffectedFiles  []string
	Duration       time.Duration
}

// Simulator runs impact simulations through a lint-runner collaborator.
type Simulator struct {
	runner      shared.LintRunner
	logger      hclog.Logger
	scratchRoot string
	reporter    string
	timeout     time.Duration
	workers     int
}

// Options tune a Simulator beyond its defaults.
type Options struct {
	Reporter string
	Timeout  time.Duration
	Workers  int
}

// New creates a simulator. scratchRoot is the directory scratch sandboxes are
// created under; it is created on demand.
func New(runner shared.LintRunner, scratchRoot string, logger hclog.Logger, opts Options) *Simulator {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.Reporter == "" {
		opts.Reporter = "json"
	}
	return &Simulator{
		runner:      runner,
		logger:      logger,
		scratchRoot: scratchRoot,
		reporter:    opts.Reporter,
		timeout:     opts.Timeout,
		workers:     opts.Workers,
	}
}

// SimulateRule clones doc with ruleID forced on, persists the clone to an
// isolated scratch directory, runs the lint collaborator against
// workspaceRoot with that scratch config, and reduces the findings to a
// Result. The real configuration file is never opened for writing. Scratch
// cleanup is best-effort: a failure to delete is logged, never returned.
func (s *Simulator) SimulateRule(ctx context.Context, ruleID string, doc *ruleconfig.Document, workspaceRoot string, isOptIn bool) (*Result, error) {
	start := time.Now()

	candidate := doc.Clone()
	candidate.EnableRule(ruleID, nil, isOptIn)

	scratchDir := filepath.Join(s.scratchRoot, "sim-"+uuid.NewString())
	if err := os.MkdirAll(scratchDir, 0755); err != nil {
		return nil, scerrors.NewIOError("create scratch directory", scratchDir, err)
	}
	defer s.cleanupScratch(scratchDir)

	configPath := filepath.Join(scratchDir, scratchConfigName)
	if err := os.WriteFile(configPath, ruleconfig.Serialize(candidate), 0644); err != nil {
		return nil, scerrors.NewIOError("write scratch config", configPath, err)
	}

	result, err := s.runWithContext(ctx, shared.LintRequest{
		ConfigPath:     configPath,
		WorkspaceRoot:  workspaceRoot,
		Reporter:       s.reporter,
		TimeoutSeconds: int(s.timeout / time.Second),
	})
	if err != nil {
		if simErr, ok := err.(*scerrors.SimulationError); ok {
			simErr.RuleID = ruleID
		}
		return nil, err
	}

	return reduce(ruleID, result, time.Since(start)), nil
}

// contextLintRunner is implemented by runners that can abort an in-flight
// linter invocation when the caller's context is cancelled.
type contextLintRunner interface {
	RunContext(ctx context.Context, req shared.LintRequest) (shared.LintResult, error)
}

// runWithContext prefers a context-aware runner so a cancel kills the external
// process. For context-free runners (the RPC plugin boundary) the call runs in
// its own goroutine and a cancelled context abandons it; the runner's own
// timeout still bounds the external process.
func (s *Simulator) runWithContext(ctx context.Context, req shared.LintRequest) (shared.LintResult, error) {
	if cr, ok := s.runner.(contextLintRunner); ok {
		return cr.RunContext(ctx, req)
	}

	type outcome struct {
		result shared.LintResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := s.runner.Run(req)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return shared.LintResult{}, scerrors.NewSimulationError(scerrors.Timeout, "", ctx.Err().Error())
	case out := <-done:
		return out.result, out.err
	}
}

func (s *Simulator) cleanupScratch(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		nonCritical := scerrors.NewNonCriticalError("scratch cleanup", err)
		s.logger.Warn("failed to remove scratch directory", "path", dir, "error", nonCritical)
	}
}

// reduce filters the findings down to the simulated rule and collects the
// affected file set.
func reduce(ruleID string, result shared.LintResult, duration time.Duration) *Result {
	out := &Result{RuleID: ruleID, Duration: duration}
	seen := map[string]bool{}
	for _, v := range result.Violations {
		if v.RuleID != ruleID {
			continue
		}
		out.Violations = append(out.Violations, v)
		if v.FilePath != "" && !seen[v.FilePath] {
			seen[v.FilePath] = true
			out.AffectedFiles = append(out.AffectedFiles, v.FilePath)
		}
	}
	out.ViolationCount = len(out.Violations)
	sort.Strings(out.AffectedFiles)
	return out
}

// String renders a one-line summary for logs and CLI output.
func (r *Result) String() string {
	return fmt.Sprintf("rule %s: %d violation(s) across %d file(s) in %s",
		r.RuleID, r.ViolationCount, len(r.AffectedFiles), r.Duration.Round(time.Millisecond))
}

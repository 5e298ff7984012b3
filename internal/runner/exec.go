// Package runner provides the in-process, exec-based implementation of the
// lint-runner contract. It is the default collaborator when no runner plugin
// is installed.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lint-studio/lint-studio/internal/sarifreport"
	"github.com/lint-studio/lint-studio/pkg/shared"
	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
)

// DefaultBinary is the linter executable resolved from PATH when the caller
// does not name one.
const DefaultBinary = "swiftlint"

// ExecRunner runs the linter binary directly and parses its report output.
type ExecRunner struct {
	binary string
	logger hclog.Logger
}

// NewExecRunner creates a runner for the given linter binary. An empty binary
// selects DefaultBinary.
func NewExecRunner(binary string, logger hclog.Logger) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{binary: binary, logger: logger}
}

// jsonViolation is one record of the linter's JSON reporter output.
type jsonViolation struct {
	RuleID   string `json:"rule_id"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Severity string `json:"severity"`
	Reason   string `json:"reason"`
}

// Run invokes the linter against req.WorkspaceRoot with the configuration at
// req.ConfigPath and returns the parsed findings. A missing binary, an
// expired timeout, and a broken execution map to the three recoverable
// lint-runner failure kinds.
func (r *ExecRunner) Run(req shared.LintRequest) (shared.LintResult, error) {
	return r.RunContext(context.Background(), req)
}

// RunContext is Run bounded by the caller's context: cancelling ctx kills the
// linter process instead of letting it run out its timeout.
func (r *ExecRunner) RunContext(ctx context.Context, req shared.LintRequest) (shared.LintResult, error) {
	timeout := time.Duration(req.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reporter := req.Reporter
	if reporter == "" {
		reporter = "json"
	}

	args := []string{"lint", "--config", req.ConfigPath, "--reporter", reporter}
	args = append(args, req.AdditionalArgs...)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = req.WorkspaceRoot
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running linter", "binary", r.binary, "config", req.ConfigPath, "workspace", req.WorkspaceRoot)
	runErr := cmd.Run()

	switch ctx.Err() {
	case context.DeadlineExceeded:
		return shared.LintResult{Status: "FAILED", Message: "linter timed out"},
			scerrors.NewSimulationError(scerrors.Timeout, "", fmt.Sprintf("linter exceeded %s", timeout))
	case context.Canceled:
		return shared.LintResult{Status: "FAILED", Message: "linter run cancelled"},
			scerrors.NewSimulationError(scerrors.Timeout, "", "linter run cancelled")
	}
	if runErr != nil {
		var execErr *exec.Error
		if errors.As(runErr, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return shared.LintResult{Status: "FAILED", Message: "linter binary not found"},
				scerrors.NewSimulationError(scerrors.RunnerNotFound, "", fmt.Sprintf("%q not found in PATH", r.binary))
		}
		// Linters exit non-zero when violations are found; that is a successful
		// run as long as the report parses.
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return shared.LintResult{Status: "FAILED", Message: runErr.Error()},
				scerrors.NewSimulationError(scerrors.ExecutionFailed, "", runErr.Error())
		}
	}

	violations, parseErr := parseReport(reporter, stdout.Bytes())
	if parseErr != nil {
		msg := parseErr.Error()
		if stderr.Len() > 0 {
			msg = fmt.Sprintf("%s (stderr: %s)", msg, stderr.String())
		}
		return shared.LintResult{Status: "FAILED", Message: msg},
			scerrors.NewSimulationError(scerrors.ExecutionFailed, "", msg)
	}

	return shared.LintResult{Violations: violations, Status: "OK"}, nil
}

func parseReport(reporter string, data []byte) ([]shared.Violation, error) {
	switch reporter {
	case "sarif":
		report, err := sarifreport.FromBytes(data)
		if err != nil {
			return nil, err
		}
		return sarifreport.Violations(report), nil
	default:
		return parseJSONReport(data)
	}
}

func parseJSONReport(data []byte) ([]shared.Violation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var records []jsonViolation
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON report: %w", err)
	}
	violations := make([]shared.Violation, 0, len(records))
	for _, rec := range records {
		violations = append(violations, shared.Violation{
			RuleID:   rec.RuleID,
			FilePath: rec.File,
			Line:     rec.Line,
			Severity: rec.Severity,
			Message:  rec.Reason,
		})
	}
	return violations, nil
}

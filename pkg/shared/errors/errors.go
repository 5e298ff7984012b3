package errors

import "fmt"

// ParseError indicates the configuration document could not be parsed.
// The model is never partially populated when a ParseError is returned.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("failed to parse configuration: %s", e.Reason)
}

// NewParseError creates a ParseError for the given source path and reason.
func NewParseError(path, reason string) error {
	return &ParseError{Path: path, Reason: reason}
}

// ValidationKind classifies semantic validation failures caught before a write.
type ValidationKind string

const (
	InvalidSeverity ValidationKind = "invalid_severity"
	InvalidPath     ValidationKind = "invalid_path"
)

// ValidationError indicates the document violates a semantic rule.
// A failing validation aborts a save with zero side effects.
type ValidationError struct {
	Kind    ValidationKind
	Subject string
	Detail  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s) for %q: %s", e.Kind, e.Subject, e.Detail)
}

// NewValidationError creates a ValidationError of the given kind.
func NewValidationError(kind ValidationKind, subject, detail string) error {
	return &ValidationError{Kind: kind, Subject: subject, Detail: detail}
}

// IOError indicates a backup or temporary file could not be created or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err with the failing operation and path.
func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// RenameFailedError indicates the atomic replace step failed.
// The original file is guaranteed to remain intact when this is returned.
type RenameFailedError struct {
	From string
	To   string
	Err  error
}

func (e *RenameFailedError) Error() string {
	return fmt.Sprintf("atomic rename %q -> %q failed: %v", e.From, e.To, e.Err)
}

func (e *RenameFailedError) Unwrap() error { return e.Err }

// NewRenameFailedError wraps err from the rename step of an atomic write.
func NewRenameFailedError(from, to string, err error) error {
	return &RenameFailedError{From: from, To: to, Err: err}
}

// SimulationKind classifies external lint-runner failures.
type SimulationKind string

const (
	RunnerNotFound  SimulationKind = "not_found"
	ExecutionFailed SimulationKind = "execution_failed"
	Timeout         SimulationKind = "timeout"
)

// SimulationError indicates the external lint runner failed for one rule.
// Batch operations treat these as recoverable per call, never fatal to the batch.
type SimulationError struct {
	Kind    SimulationKind
	RuleID  string
	Message string
}

func (e *SimulationError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("simulation of rule %q failed (%s): %s", e.RuleID, e.Kind, e.Message)
	}
	return fmt.Sprintf("simulation failed (%s): %s", e.Kind, e.Message)
}

// NewSimulationError creates a SimulationError of the given kind.
func NewSimulationError(kind SimulationKind, ruleID, message string) error {
	return &SimulationError{Kind: kind, RuleID: ruleID, Message: message}
}

// NonCriticalError marks a failure that callers log and swallow, such as
// scratch-directory cleanup. It must not mask the primary result.
type NonCriticalError struct {
	Op  string
	Err error
}

func (e *NonCriticalError) Error() string {
	return fmt.Sprintf("non-critical failure during %s: %v", e.Op, e.Err)
}

func (e *NonCriticalError) Unwrap() error { return e.Err }

// NewNonCriticalError wraps err as a non-critical failure.
func NewNonCriticalError(op string, err error) error {
	return &NonCriticalError{Op: op, Err: err}
}

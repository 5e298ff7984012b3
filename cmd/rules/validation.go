package rules

import (
	"fmt"

	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/pkg/shared/files"
)

// defaultConfigName is appended when the 'file' flag points at a directory.
const defaultConfigName = ".swiftlint.yml"

// validateRulesArgs validates the arguments provided to the rule edit commands
// and resolves the configuration path (tilde expansion, directory targets).
func validateRulesArgs(opts *RunOptionsRules, ruleID string) error {
	if ruleID == "" {
		return fmt.Errorf("a rule identifier must be specified")
	}
	if opts.ConfigFile == "" {
		return fmt.Errorf("the 'file' flag must not be empty")
	}

	fullPath, _, err := files.DetermineFileFullPath(opts.ConfigFile, defaultConfigName)
	if err != nil {
		return fmt.Errorf("failed to resolve the 'file' flag: %w", err)
	}
	opts.ConfigFile = fullPath

	if opts.Severity != "" &&
		opts.Severity != string(ruleconfig.SeverityWarning) &&
		opts.Severity != string(ruleconfig.SeverityError) {
		return fmt.Errorf("the 'severity' flag must be %q or %q, got %q",
			ruleconfig.SeverityWarning, ruleconfig.SeverityError, opts.Severity)
	}
	return nil
}

package saferules

import (
	"fmt"
	"os"

	"github.com/lint-studio/lint-studio/pkg/shared/files"
)

const defaultConfigName = ".swiftlint.yml"

// resolveRuleIDs validates the arguments, resolves the involved paths, and
// collects the candidate rule identifiers from positional arguments or from
// the rules file, never both.
func resolveRuleIDs(opts *RunOptionsSafeRules, args []string) ([]string, error) {
	if opts.ConfigFile == "" {
		return nil, fmt.Errorf("the 'file' flag must not be empty")
	}

	fullPath, _, err := files.DetermineFileFullPath(opts.ConfigFile, defaultConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve the 'file' flag: %w", err)
	}
	opts.ConfigFile = fullPath

	workspace, err := files.ExpandPath(opts.WorkspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve the 'workspace' flag: %w", err)
	}
	if _, err := os.Stat(workspace); os.IsNotExist(err) {
		return nil, fmt.Errorf("the workspace path does not exist: %v", workspace)
	}
	opts.WorkspaceRoot = workspace

	if len(args) > 0 && opts.RulesFile != "" {
		return nil, fmt.Errorf("you cannot use a 'rules-file' flag and positional rule identifiers at the same time")
	}
	if len(args) > 0 {
		return args, nil
	}
	if opts.RulesFile == "" {
		return nil, fmt.Errorf("either positional rule identifiers or the 'rules-file' flag must be specified")
	}

	rulesFile, err := files.ExpandPath(opts.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve the 'rules-file' flag: %w", err)
	}
	if err := files.ValidatePath(rulesFile); err != nil {
		return nil, fmt.Errorf("the 'rules-file' flag is invalid: %w", err)
	}
	return readRulesFile(rulesFile)
}

package simulate

import (
	"fmt"
	"os"

	"github.com/lint-studio/lint-studio/pkg/shared/files"
)

const defaultConfigName = ".swiftlint.yml"

// validateSimulateArgs validates the arguments provided to the simulate
// command and resolves the configuration and workspace paths.
func validateSimulateArgs(opts *RunOptionsSimulate, ruleID string) error {
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

	workspace, err := files.ExpandPath(opts.WorkspaceRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve the 'workspace' flag: %w", err)
	}
	if _, err := os.Stat(workspace); os.IsNotExist(err) {
		return fmt.Errorf("the workspace path does not exist: %v", workspace)
	}
	opts.WorkspaceRoot = workspace
	return nil
}

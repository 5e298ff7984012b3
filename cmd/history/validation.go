package history

import (
	"fmt"

	"github.com/lint-studio/lint-studio/pkg/shared/files"
)

const defaultConfigName = ".swiftlint.yml"

// validateHistoryArgs validates the arguments shared by the history commands
// and resolves the configuration path.
func validateHistoryArgs(opts *RunOptionsHistory) error {
	if opts.ConfigFile == "" {
		return fmt.Errorf("the 'file' flag must not be empty")
	}
	fullPath, _, err := files.DetermineFileFullPath(opts.ConfigFile, defaultConfigName)
	if err != nil {
		return fmt.Errorf("failed to resolve the 'file' flag: %w", err)
	}
	opts.ConfigFile = fullPath
	return nil
}

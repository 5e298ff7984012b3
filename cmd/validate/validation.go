package validate

import (
	"fmt"

	"github.com/lint-studio/lint-studio/pkg/shared/files"
)

const defaultConfigName = ".swiftlint.yml"

// validateValidateArgs resolves the configuration path and checks that it
// points at an existing regular file.
func validateValidateArgs(opts *RunOptionsValidate) error {
	if opts.ConfigFile == "" {
		return fmt.Errorf("the 'file' flag must not be empty")
	}
	fullPath, _, err := files.DetermineFileFullPath(opts.ConfigFile, defaultConfigName)
	if err != nil {
		return fmt.Errorf("failed to resolve the 'file' flag: %w", err)
	}
	if err := files.ValidatePath(fullPath); err != nil {
		return fmt.Errorf("the 'file' flag is invalid: %w", err)
	}
	opts.ConfigFile = fullPath
	return nil
}

package diff

import (
	"fmt"

	"github.com/lint-studio/lint-studio/pkg/shared/files"
)

const defaultConfigName = ".swiftlint.yml"

// validateDiffArgs validates the arguments provided to the diff command and
// resolves both configuration paths.
func validateDiffArgs(opts *RunOptionsDiff) error {
	if opts.Against == "" {
		return fmt.Errorf("the 'against' flag must be specified")
	}
	if opts.ConfigFile == "" {
		return fmt.Errorf("the 'file' flag must not be empty")
	}

	fullPath, _, err := files.DetermineFileFullPath(opts.ConfigFile, defaultConfigName)
	if err != nil {
		return fmt.Errorf("failed to resolve the 'file' flag: %w", err)
	}
	opts.ConfigFile = fullPath

	against, err := files.ExpandPath(opts.Against)
	if err != nil {
		return fmt.Errorf("failed to resolve the 'against' flag: %w", err)
	}
	if err := files.ValidatePath(against); err != nil {
		return fmt.Errorf("the 'against' flag is invalid: %w", err)
	}
	opts.Against = against
	return nil
}

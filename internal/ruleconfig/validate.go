package ruleconfig

import (
	"fmt"

	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
)

// Validate checks the document's semantic rules before it may be written:
// every severity must be a recognized literal and every include/exclude path
// pattern must be non-empty. The first violation found is returned.
func Validate(d *Document) error {
	for _, id := range ruleSerializationOrder(d) {
		entry := d.Rules[id]
		if entry.Severity == nil {
			continue
		}
		if *entry.Severity != SeverityWarning && *entry.Severity != SeverityError {
			return scerrors.NewValidationError(scerrors.InvalidSeverity, id,
				fmt.Sprintf("severity must be %q or %q, got %q", SeverityWarning, SeverityError, *entry.Severity))
		}
	}

	for i, pattern := range d.Included {
		if pattern == "" {
			return scerrors.NewValidationError(scerrors.InvalidPath, KeyIncluded,
				fmt.Sprintf("path pattern at index %d is empty", i))
		}
	}
	for i, pattern := range d.Excluded {
		if pattern == "" {
			return scerrors.NewValidationError(scerrors.InvalidPath, KeyExcluded,
				fmt.Sprintf("path pattern at index %d is empty", i))
		}
	}

	return nil
}

// Package diff computes structural deltas between two configuration documents.
package diff

import (
	"sort"

	"github.com/lint-studio/lint-studio/internal/ruleconfig"
)

// Diff is the classified rule-set delta between two documents plus their full
// serialized forms. It is an immutable value computed on demand and never
// persisted.
type Diff struct {
	Added      []string
	Removed    []string
	Modified   []string
	BeforeText string
	AfterText  string
}

// HasChanges reports whether any rule was added, removed, or modified.
func (d Diff) HasChanges() bool {
	return len(d.Added)+len(d.Removed)+len(d.Modified) > 0
}

// Compute compares current against proposed. It is pure: identical inputs
// always produce identical output and neither document is touched. A rule is
// modified when it exists in both and differs in enabled, severity, or deep
// parameter equality.
func Compute(current, proposed *ruleconfig.Document) Diff {
	out := Diff{
		BeforeText: string(ruleconfig.Serialize(current)),
		AfterText:  string(ruleconfig.Serialize(proposed)),
	}

	for id, proposedEntry := range proposed.Rules {
		currentEntry, ok := current.Rules[id]
		if !ok {
			out.Added = append(out.Added, id)
			continue
		}
		if !currentEntry.Equal(proposedEntry) {
			out.Modified = append(out.Modified, id)
		}
	}
	for id := range current.Rules {
		if _, ok := proposed.Rules[id]; !ok {
			out.Removed = append(out.Removed, id)
		}
	}

	sort.Strings(out.Added)
	sort.Strings(out.Removed)
	sort.Strings(out.Modified)
	return out
}

package simulate

import (
	"context"
	"sort"
	"sync"

	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/pkg/shared"
)

// FindSafeRules simulates every currently-disabled rule in allRuleIDs and
// returns those that would produce zero violations, sorted. Rules run with
// bounded concurrency, each in its own scratch directory. A failing rule is
// logged and excluded; it never aborts the batch.
func (s *Simulator) FindSafeRules(ctx context.Context, doc *ruleconfig.Document, allRuleIDs []string, workspaceRoot string) []string {
	var candidates []string
	for _, id := range allRuleIDs {
		if !doc.IsRuleEnabled(id) {
			candidates = append(candidates, id)
		}
	}

	var mu sync.Mutex
	var safe []string
	shared.ForEveryStringWithBoundedGoroutines(s.workers, candidates, func(i int, ruleID string) {
		if ctx.Err() != nil {
			return
		}
		result, err := s.SimulateRule(ctx, ruleID, doc, workspaceRoot, false)
		if err != nil {
			s.logger.Warn("rule excluded from safe-rule discovery", "rule", ruleID, "error", err)
			return
		}
		if result.ViolationCount == 0 {
			mu.Lock()
			safe = append(safe, ruleID)
			mu.Unlock()
		}
	})

	sort.Strings(safe)
	return safe
}

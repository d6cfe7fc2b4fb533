package planlimits

import (
	"mathtutor-be/internal/config"
	"mathtutor-be/internal/constant"
)

// Unlimited marks a feature with no daily cap.
const Unlimited = -1

// Table holds the per-plan daily caps for each feature key.
type Table struct {
	limits map[string]map[string]int
}

// New builds the limit table. Free-plan caps come from configuration,
// the pro plan is unlimited across the board.
func New(cfg config.LimitsConfig) *Table {
	return &Table{
		limits: map[string]map[string]int{
			constant.PlanFree: {
				constant.FeatureGraphs:        cfg.FreeGraphsDaily,
				constant.FeatureFlashcards:    cfg.FreeFlashcardsDaily,
				constant.FeatureSolutions:     cfg.FreeSolutionsDaily,
				constant.FeaturePracticeTests: cfg.FreePracticeTestsDaily,
			},
			constant.PlanPro: {
				constant.FeatureGraphs:        Unlimited,
				constant.FeatureFlashcards:    Unlimited,
				constant.FeatureSolutions:     Unlimited,
				constant.FeaturePracticeTests: Unlimited,
			},
		},
	}
}

// LimitFor returns the daily cap for a plan and feature. Unknown plans fall
// back to the free plan, unknown features are capped at zero.
func (t *Table) LimitFor(plan string, feature string) int {
	planTable, ok := t.limits[plan]
	if !ok {
		planTable = t.limits[constant.PlanFree]
	}
	limit, ok := planTable[feature]
	if !ok {
		return 0
	}
	return limit
}

// Allows reports whether a feature invocation is permitted given the count
// already consumed today.
func (t *Table) Allows(plan string, feature string, used int) bool {
	limit := t.LimitFor(plan, feature)
	if limit == Unlimited {
		return true
	}
	return used < limit
}

package constant

// Feature keys metered by the usage system. One key per tool-backed feature.
const (
	FeatureGraphs        = "graphs"
	FeatureFlashcards    = "flashcards"
	FeatureSolutions     = "solutions"
	FeaturePracticeTests = "practice_tests"
)

func AllFeatures() []string {
	return []string{FeatureGraphs, FeatureFlashcards, FeatureSolutions, FeaturePracticeTests}
}

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

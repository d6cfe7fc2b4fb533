package planlimits

import (
	"testing"

	"mathtutor-be/internal/config"
	"mathtutor-be/internal/constant"
)

func testConfig() config.LimitsConfig {
	return config.LimitsConfig{
		FreeGraphsDaily:        2,
		FreeFlashcardsDaily:    1,
		FreeSolutionsDaily:     3,
		FreePracticeTestsDaily: 1,
	}
}

func TestLimitFor(t *testing.T) {
	table := New(testConfig())

	tests := []struct {
		name    string
		plan    string
		feature string
		want    int
	}{
		{"free graphs", constant.PlanFree, constant.FeatureGraphs, 2},
		{"free flashcards", constant.PlanFree, constant.FeatureFlashcards, 1},
		{"free solutions", constant.PlanFree, constant.FeatureSolutions, 3},
		{"free practice tests", constant.PlanFree, constant.FeaturePracticeTests, 1},
		{"pro graphs unlimited", constant.PlanPro, constant.FeatureGraphs, Unlimited},
		{"pro solutions unlimited", constant.PlanPro, constant.FeatureSolutions, Unlimited},
		{"unknown plan falls back to free", "enterprise", constant.FeatureGraphs, 2},
		{"unknown feature is zero", constant.PlanFree, "video_calls", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.LimitFor(tt.plan, tt.feature); got != tt.want {
				t.Errorf("LimitFor(%q, %q) = %d, want %d", tt.plan, tt.feature, got, tt.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	table := New(testConfig())

	tests := []struct {
		name    string
		plan    string
		feature string
		used    int
		want    bool
	}{
		{"under cap", constant.PlanFree, constant.FeatureGraphs, 0, true},
		{"one below cap", constant.PlanFree, constant.FeatureGraphs, 1, true},
		{"at cap", constant.PlanFree, constant.FeatureGraphs, 2, false},
		{"over cap", constant.PlanFree, constant.FeatureGraphs, 5, false},
		{"pro never capped", constant.PlanPro, constant.FeatureGraphs, 100000, true},
		{"unknown feature always denied", constant.PlanFree, "video_calls", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Allows(tt.plan, tt.feature, tt.used); got != tt.want {
				t.Errorf("Allows(%q, %q, %d) = %v, want %v", tt.plan, tt.feature, tt.used, got, tt.want)
			}
		})
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"mathtutor-be/internal/config"
	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/planlimits"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureUsage(t *testing.T) {
	t.Run("bounded cap reports remaining and percent", func(t *testing.T) {
		u := featureUsage(1, 2)
		assert.Equal(t, 1, u.Remaining)
		assert.InDelta(t, 50.0, u.Percent, 0.001)
		assert.False(t, u.Unlimited)
	})

	t.Run("overshoot clamps to zero remaining and full percent", func(t *testing.T) {
		u := featureUsage(5, 2)
		assert.Equal(t, 0, u.Remaining)
		assert.InDelta(t, 100.0, u.Percent, 0.001)
	})

	t.Run("unlimited cap reports sentinel remaining and zero percent", func(t *testing.T) {
		u := featureUsage(40, planlimits.Unlimited)
		assert.True(t, u.Unlimited)
		assert.Equal(t, -1, u.Remaining)
		assert.Zero(t, u.Percent)
	})
}

func TestSummaryCountsTodayOnly(t *testing.T) {
	ctx := context.Background()
	store, factory := newFakeFactory()

	user := &entity.User{Id: uuid.New()}
	today := dayKey(time.Now())
	staleDay := dayKey(time.Now().AddDate(0, 0, -3))

	store.counters[counterKey(user.Id, today, constant.FeatureGraphs)] = &entity.UsageCounter{
		UserId: user.Id, UsageDate: today, Feature: constant.FeatureGraphs, Count: 2,
	}
	store.counters[counterKey(user.Id, staleDay, constant.FeatureGraphs)] = &entity.UsageCounter{
		UserId: user.Id, UsageDate: staleDay, Feature: constant.FeatureGraphs, Count: 5,
	}

	limits := planlimits.New(config.LimitsConfig{
		FreeGraphsDaily:        2,
		FreeFlashcardsDaily:    1,
		FreeSolutionsDaily:     3,
		FreePracticeTestsDaily: 1,
	})
	svc := NewUsageService(factory, limits)

	summary, err := svc.Summary(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, today, summary.Date)

	graphs := summary.Features[constant.FeatureGraphs]
	assert.Equal(t, 2, graphs.Used)
	assert.Equal(t, 0, graphs.Remaining)

	// Features with no row today read as untouched.
	solutions := summary.Features[constant.FeatureSolutions]
	assert.Equal(t, 0, solutions.Used)
	assert.Equal(t, 3, solutions.Remaining)
}

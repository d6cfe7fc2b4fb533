package service

import (
	"context"
	"testing"
	"time"

	"mathtutor-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestApplyStreakTouch(t *testing.T) {
	today := "2026-03-10"
	yesterday := "2026-03-09"

	t.Run("first activity ever starts at one", func(t *testing.T) {
		count, changed := applyStreakTouch(0, nil, today, yesterday)
		assert.Equal(t, 1, count)
		assert.True(t, changed)
	})

	t.Run("same day touch is a no-op", func(t *testing.T) {
		count, changed := applyStreakTouch(5, strPtr(today), today, yesterday)
		assert.Equal(t, 5, count)
		assert.False(t, changed)
	})

	t.Run("consecutive day extends the streak", func(t *testing.T) {
		count, changed := applyStreakTouch(5, strPtr(yesterday), today, yesterday)
		assert.Equal(t, 6, count)
		assert.True(t, changed)
	})

	t.Run("gap resets to one", func(t *testing.T) {
		count, changed := applyStreakTouch(12, strPtr("2026-03-01"), today, yesterday)
		assert.Equal(t, 1, count)
		assert.True(t, changed)
	})

	t.Run("year boundary counts as consecutive", func(t *testing.T) {
		count, changed := applyStreakTouch(30, strPtr("2025-12-31"), "2026-01-01", "2025-12-31")
		assert.Equal(t, 31, count)
		assert.True(t, changed)
	})
}

func TestDecaySweepClearsStreakState(t *testing.T) {
	ctx := context.Background()
	store, factory := newFakeFactory()
	now := time.Now()

	staleId := uuid.New()
	freshId := uuid.New()
	store.users[staleId] = &entity.User{
		Id:               staleId,
		StreakCount:      4,
		LastActivityDate: strPtr(dayKey(now.AddDate(0, 0, -10))),
	}
	store.users[freshId] = &entity.User{
		Id:               freshId,
		StreakCount:      2,
		LastActivityDate: strPtr(dayKey(now.AddDate(0, 0, -1))),
	}

	svc := NewStreakService(factory, nopLogger{})
	affected, err := svc.DecaySweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Swept users land in the no-streak state: zero count, no activity date.
	stale := store.users[staleId]
	assert.Equal(t, 0, stale.StreakCount)
	assert.Nil(t, stale.LastActivityDate)

	fresh := store.users[freshId]
	assert.Equal(t, 2, fresh.StreakCount)
	require.NotNil(t, fresh.LastActivityDate)
}

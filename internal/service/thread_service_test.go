package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewText(t *testing.T) {
	t.Run("uses first text part", func(t *testing.T) {
		parts := []entity.MessagePart{
			{Type: "tool", ToolName: "create_function_graph"},
			{Type: "text", Text: "solve for x"},
		}
		assert.Equal(t, "solve for x", previewText(parts))
	})

	t.Run("truncates long text", func(t *testing.T) {
		parts := []entity.MessagePart{{Type: "text", Text: strings.Repeat("a", 500)}}
		assert.Len(t, previewText(parts), 160)
	})

	t.Run("truncates multi-byte text on a rune boundary", func(t *testing.T) {
		parts := []entity.MessagePart{{Type: "text", Text: strings.Repeat("π²", 200)}}
		preview := previewText(parts)
		assert.True(t, utf8.ValidString(preview))
		assert.Equal(t, previewMaxLen, utf8.RuneCountInString(preview))
	})

	t.Run("empty when no text parts", func(t *testing.T) {
		parts := []entity.MessagePart{{Type: "tool", ToolName: "create_flashcard_set"}}
		assert.Equal(t, "", previewText(parts))
	})
}

func newThreadFixture() (*fakeStore, IThreadService, uuid.UUID, uuid.UUID) {
	store, factory := newFakeFactory()

	userId := uuid.New()
	threadId := uuid.New()
	store.threads[threadId] = &entity.Thread{
		Id:     threadId,
		UserId: userId,
		Title:  defaultThreadTitle,
	}

	return store, NewThreadService(factory, nopLogger{}), userId, threadId
}

func textParts(text string) []entity.MessagePart {
	return []entity.MessagePart{{Type: "text", Text: text}}
}

func TestAppendKeepsOrderDense(t *testing.T) {
	ctx := context.Background()
	store, svc, userId, threadId := newThreadFixture()

	roles := []string{
		constant.MessageRoleUser,
		constant.MessageRoleAssistant,
		constant.MessageRoleUser,
	}
	for i, role := range roles {
		res, err := svc.Append(ctx, userId, &dto.AppendMessageRequest{
			ThreadId: threadId,
			Role:     role,
			Parts:    textParts("message"),
		})
		require.NoError(t, err)
		assert.Equal(t, i, res.Order)
	}

	thread := store.threads[threadId]
	assert.Equal(t, len(roles), thread.MessageCount)

	// The counter always sits one past the highest assigned order.
	maxOrder := -1
	for _, m := range store.messages {
		if m.Order > maxOrder {
			maxOrder = m.Order
		}
	}
	assert.Equal(t, maxOrder+1, thread.MessageCount)
}

func TestAppendRejectsForeignThread(t *testing.T) {
	ctx := context.Background()
	_, svc, _, threadId := newThreadFixture()

	_, err := svc.Append(ctx, uuid.New(), &dto.AppendMessageRequest{
		ThreadId: threadId,
		Role:     constant.MessageRoleUser,
		Parts:    textParts("hi"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcileMessageCount(t *testing.T) {
	ctx := context.Background()
	store, svc, userId, threadId := newThreadFixture()

	for i := 0; i < 3; i++ {
		_, err := svc.Append(ctx, userId, &dto.AppendMessageRequest{
			ThreadId: threadId,
			Role:     constant.MessageRoleUser,
			Parts:    textParts("msg"),
		})
		require.NoError(t, err)
	}

	// Drift the counter, reconciliation must restore max(order)+1.
	store.threads[threadId].MessageCount = 9
	require.NoError(t, svc.ReconcileMessageCount(ctx, threadId))
	assert.Equal(t, 3, store.threads[threadId].MessageCount)
}

func TestReconcileMessageCountEmptyThread(t *testing.T) {
	ctx := context.Background()
	store, svc, _, threadId := newThreadFixture()

	store.threads[threadId].MessageCount = 5
	require.NoError(t, svc.ReconcileMessageCount(ctx, threadId))
	assert.Equal(t, 0, store.threads[threadId].MessageCount)
}

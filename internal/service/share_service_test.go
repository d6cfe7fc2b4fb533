package service

import (
	"context"
	"testing"
	"time"

	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSharedThreadFixture() (*fakeStore, IShareService, uuid.UUID, uuid.UUID) {
	store, factory := newFakeFactory()

	userId := uuid.New()
	threadId := uuid.New()
	store.users[userId] = &entity.User{Id: userId, ExternalId: "ext-owner"}
	store.threads[threadId] = &entity.Thread{
		Id:        threadId,
		UserId:    userId,
		Title:     "Derivatives practice",
		CreatedAt: time.Now(),
	}

	svc := NewShareService(factory, nil, nopLogger{})
	return store, svc, userId, threadId
}

func TestShareIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, svc, userId, threadId := newSharedThreadFixture()

	req := &dto.ShareRequest{ItemKind: string(entity.ShareKindThread), ItemId: threadId}

	first, err := svc.Share(ctx, userId, req)
	require.NoError(t, err)
	second, err := svc.Share(ctx, userId, req)
	require.NoError(t, err)

	assert.Equal(t, first.ShareId, second.ShareId)
	assert.True(t, second.Active)
	assert.Len(t, store.shares, 1)
}

func TestUnshareStopsResolution(t *testing.T) {
	ctx := context.Background()
	_, svc, userId, threadId := newSharedThreadFixture()

	shared, err := svc.Share(ctx, userId, &dto.ShareRequest{
		ItemKind: string(entity.ShareKindThread),
		ItemId:   threadId,
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, shared.ShareId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ShareKindThread), resolved.ItemKind)

	unshareReq := &dto.UnshareRequest{ItemKind: string(entity.ShareKindThread), ItemId: threadId}
	unshared, err := svc.Unshare(ctx, userId, unshareReq)
	require.NoError(t, err)
	assert.True(t, unshared)

	_, err = svc.Resolve(ctx, shared.ShareId)
	assert.ErrorIs(t, err, ErrNotFound)

	// Already inactive, so the second call reports nothing happened.
	unshared, err = svc.Unshare(ctx, userId, unshareReq)
	require.NoError(t, err)
	assert.False(t, unshared)
}

func TestShareIdStableAcrossReshare(t *testing.T) {
	ctx := context.Background()
	_, svc, userId, threadId := newSharedThreadFixture()

	req := &dto.ShareRequest{ItemKind: string(entity.ShareKindThread), ItemId: threadId}
	first, err := svc.Share(ctx, userId, req)
	require.NoError(t, err)

	_, err = svc.Unshare(ctx, userId, &dto.UnshareRequest{
		ItemKind: string(entity.ShareKindThread),
		ItemId:   threadId,
	})
	require.NoError(t, err)

	again, err := svc.Share(ctx, userId, req)
	require.NoError(t, err)
	assert.Equal(t, first.ShareId, again.ShareId)

	resolved, err := svc.Resolve(ctx, first.ShareId)
	require.NoError(t, err)
	assert.NotNil(t, resolved.Item)
}

func TestUnshareByNonOwnerIsNoOp(t *testing.T) {
	ctx := context.Background()
	_, svc, userId, threadId := newSharedThreadFixture()

	shared, err := svc.Share(ctx, userId, &dto.ShareRequest{
		ItemKind: string(entity.ShareKindThread),
		ItemId:   threadId,
	})
	require.NoError(t, err)

	unshared, err := svc.Unshare(ctx, uuid.New(), &dto.UnshareRequest{
		ItemKind: string(entity.ShareKindThread),
		ItemId:   threadId,
	})
	require.NoError(t, err)
	assert.False(t, unshared)

	// Stranger's attempt left the link untouched.
	_, err = svc.Resolve(ctx, shared.ShareId)
	assert.NoError(t, err)
}

func TestUnshareNeverSharedReturnsFalse(t *testing.T) {
	ctx := context.Background()
	_, svc, userId, threadId := newSharedThreadFixture()

	unshared, err := svc.Unshare(ctx, userId, &dto.UnshareRequest{
		ItemKind: string(entity.ShareKindThread),
		ItemId:   threadId,
	})
	require.NoError(t, err)
	assert.False(t, unshared)
}

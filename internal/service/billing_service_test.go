package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"

	"mathtutor-be/internal/config"
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidSignature(t *testing.T) {
	s := &billingService{
		cfg: config.BillingConfig{ServerKey: "server-key"},
	}

	req := &dto.BillingWebhookRequest{
		OrderId:     "order-123",
		StatusCode:  "200",
		GrossAmount: "49000.00",
	}
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte("order-123"+"200"+"49000.00"+"server-key")))
	assert.True(t, s.validSignature(req))

	req.SignatureKey = "forged"
	assert.False(t, s.validSignature(req))
}

type countingEmailService struct {
	activated int
	ended     int
}

func (s *countingEmailService) SendSubscriptionActivated(toEmail, fullName string) error {
	s.activated++
	return nil
}

func (s *countingEmailService) SendSubscriptionEnded(toEmail, fullName, reason string) error {
	s.ended++
	return nil
}

func signWebhook(req *dto.BillingWebhookRequest, serverKey string) {
	input := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

func TestWebhookRedeliveryNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	store, factory := newFakeFactory()
	email := &countingEmailService{}
	cfg := config.BillingConfig{ServerKey: "server-key", ProProductId: "pro-monthly"}

	svc := NewBillingService(factory, NewUserService(factory), email, nil, cfg, "https://app.example.com", nopLogger{})

	activate := &dto.BillingWebhookRequest{
		EventId:        "evt-1",
		EventType:      WebhookSubscriptionCreated,
		OrderId:        "order-1",
		StatusCode:     "200",
		GrossAmount:    "49000.00",
		SubscriptionId: "sub-1",
		UserExternalId: "ext-student",
		Email:          "student@example.com",
	}
	signWebhook(activate, cfg.ServerKey)

	require.NoError(t, svc.HandleWebhook(ctx, activate))
	require.NoError(t, svc.HandleWebhook(ctx, activate))

	var user *entity.User
	for _, u := range store.users {
		user = u
	}
	require.NotNil(t, user)
	assert.True(t, user.IsPro)
	assert.Equal(t, 1, email.activated)

	cancel := &dto.BillingWebhookRequest{
		EventId:        "evt-2",
		EventType:      WebhookSubscriptionCanceled,
		OrderId:        "order-1",
		StatusCode:     "200",
		GrossAmount:    "49000.00",
		SubscriptionId: "sub-1",
		UserExternalId: "ext-student",
		Email:          "student@example.com",
	}
	signWebhook(cancel, cfg.ServerKey)

	require.NoError(t, svc.HandleWebhook(ctx, cancel))
	require.NoError(t, svc.HandleWebhook(ctx, cancel))

	assert.False(t, store.users[user.Id].IsPro)
	assert.Equal(t, 1, email.ended)
}

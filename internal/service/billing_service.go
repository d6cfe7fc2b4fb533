package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"mathtutor-be/internal/config"
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/pkg/mailer"
	"mathtutor-be/internal/repository/contract"
	"mathtutor-be/internal/repository/unitofwork"
	"mathtutor-be/pkg/events"
	pktNats "mathtutor-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const proMonthlyPriceIDR = 49000

// Webhook event types delivered by the billing gateway.
const (
	WebhookCheckoutCreated      = "checkout.created"
	WebhookSubscriptionCreated  = "subscription.created"
	WebhookSubscriptionCanceled = "subscription.canceled"
	WebhookSubscriptionRevoked  = "subscription.revoked"
)

type IBillingService interface {
	CreateCheckout(ctx context.Context, userId uuid.UUID) (*dto.CreateCheckoutResponse, error)
	// HandleWebhook applies one gateway notification. Handlers set absolute
	// target state, so redelivered events settle on the same outcome.
	HandleWebhook(ctx context.Context, req *dto.BillingWebhookRequest) error
}

type billingService struct {
	uowFactory     unitofwork.RepositoryFactory
	userService    IUserService
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	cfg            config.BillingConfig
	clientURL      string
	log            logger.ILogger
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	userService IUserService,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	cfg config.BillingConfig,
	clientURL string,
	log logger.ILogger,
) IBillingService {
	return &billingService{
		uowFactory:     uowFactory,
		userService:    userService,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		clientURL:      clientURL,
		log:            log,
	}
}

func (s *billingService) CreateCheckout(ctx context.Context, userId uuid.UUID) (*dto.CreateCheckoutResponse, error) {
	user, err := s.userService.GetById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user.IsPro {
		return nil, fmt.Errorf("subscription already active")
	}

	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.IsProduction {
		env = midtrans.Production
	}
	sClient.New(s.cfg.ServerKey, env)

	orderId := uuid.New().String()
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: proMonthlyPriceIDR,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/app?payment=success", s.clientURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    s.cfg.ProProductId,
				Price: proMonthlyPriceIDR,
				Qty:   1,
				Name:  "Pro monthly subscription",
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("billing gateway error: %v", midErr.GetMessage())
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewCheckoutCreated(userId.String(), orderId)); err != nil {
			s.log.Warn("billing", "checkout event publish failed", map[string]interface{}{
				"order": orderId,
				"error": err.Error(),
			})
		}
	}

	return &dto.CreateCheckoutResponse{
		OrderId:     orderId,
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *billingService) validSignature(req *dto.BillingWebhookRequest) bool {
	input := req.OrderId + req.StatusCode + req.GrossAmount + s.cfg.ServerKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
	return req.SignatureKey == expected
}

func (s *billingService) HandleWebhook(ctx context.Context, req *dto.BillingWebhookRequest) error {
	if !s.validSignature(req) {
		// Discard silently. A retried delivery with a bad signature would
		// fail the same way forever.
		s.log.Warn("billing", "webhook signature mismatch", map[string]interface{}{
			"event_id": req.EventId,
			"order":    req.OrderId,
		})
		return nil
	}

	s.log.Info("billing", "webhook received", map[string]interface{}{
		"event_id": req.EventId,
		"type":     req.EventType,
		"order":    req.OrderId,
	})

	switch req.EventType {
	case WebhookCheckoutCreated:
		// Informational only, checkout state lives at the gateway.
		return nil
	case WebhookSubscriptionCreated:
		return s.activateSubscription(ctx, req)
	case WebhookSubscriptionCanceled:
		return s.endSubscription(ctx, req, "canceled")
	case WebhookSubscriptionRevoked:
		return s.endSubscription(ctx, req, "revoked")
	default:
		s.log.Warn("billing", "unhandled webhook type", map[string]interface{}{
			"event_id": req.EventId,
			"type":     req.EventType,
		})
		return nil
	}
}

func (s *billingService) activateSubscription(ctx context.Context, req *dto.BillingWebhookRequest) error {
	user, err := s.userService.GetOrCreateByExternalId(ctx, req.UserExternalId, req.Email, "")
	if err != nil {
		return err
	}
	alreadyPro := user.IsPro

	var periodEnd *time.Time
	if req.PeriodEnd != "" {
		if t, err := time.Parse(time.RFC3339, req.PeriodEnd); err == nil {
			periodEnd = &t
		}
	}

	subscriptionId := req.SubscriptionId
	customerId := req.CustomerId
	productId := req.ProductId
	if productId == "" {
		productId = s.cfg.ProProductId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = uow.UserRepository().SetPlan(ctx, user.Id, contract.PlanUpdate{
		IsPro:            true,
		PlanProductId:    &productId,
		SubscriptionId:   &subscriptionId,
		CustomerId:       &customerId,
		CurrentPeriodEnd: periodEnd,
	})
	if err != nil {
		return err
	}

	// Redelivered events settle on the same plan state but must not repeat
	// the welcome email or the activation event.
	if alreadyPro {
		return nil
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSubscriptionActivated(user.Id.String(), subscriptionId)); err != nil {
			s.log.Warn("billing", "activation event publish failed", map[string]interface{}{
				"user":  user.Id.String(),
				"error": err.Error(),
			})
		}
	}
	if user.Email != "" {
		if err := s.emailService.SendSubscriptionActivated(user.Email, user.FullName); err != nil {
			s.log.Warn("billing", "activation email failed", map[string]interface{}{
				"user":  user.Id.String(),
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (s *billingService) endSubscription(ctx context.Context, req *dto.BillingWebhookRequest, reason string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	var user *entity.User
	var err error
	if req.SubscriptionId != "" {
		user, err = repo.FindBySubscriptionId(ctx, req.SubscriptionId)
		if err != nil {
			return err
		}
	}
	if user == nil && req.UserExternalId != "" {
		user, err = s.userService.GetOrCreateByExternalId(ctx, req.UserExternalId, req.Email, "")
		if err != nil {
			return err
		}
	}
	if user == nil {
		// Nothing to downgrade. Ack so the gateway stops retrying.
		s.log.Warn("billing", "webhook for unknown subscription", map[string]interface{}{
			"event_id":     req.EventId,
			"subscription": req.SubscriptionId,
		})
		return nil
	}

	wasPro := user.IsPro
	err = repo.SetPlan(ctx, user.Id, contract.PlanUpdate{
		IsPro:            false,
		PlanProductId:    nil,
		SubscriptionId:   nil,
		CustomerId:       nil,
		CurrentPeriodEnd: nil,
	})
	if err != nil {
		return err
	}

	// Only an actual downgrade notifies the user.
	if !wasPro {
		return nil
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSubscriptionEnded(user.Id.String(), req.SubscriptionId, reason)); err != nil {
			s.log.Warn("billing", "end event publish failed", map[string]interface{}{
				"user":  user.Id.String(),
				"error": err.Error(),
			})
		}
	}
	if user.Email != "" {
		if err := s.emailService.SendSubscriptionEnded(user.Email, user.FullName, reason); err != nil {
			s.log.Warn("billing", "end email failed", map[string]interface{}{
				"user":  user.Id.String(),
				"error": err.Error(),
			})
		}
	}
	return nil
}

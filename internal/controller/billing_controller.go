package controller

import (
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/pkg/serverutils"
	"mathtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	CreateCheckout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type billingController struct {
	billingService service.IBillingService
	userService    service.IUserService
	log            logger.ILogger
}

func NewBillingController(billingService service.IBillingService, userService service.IUserService, log logger.ILogger) IBillingController {
	return &billingController{
		billingService: billingService,
		userService:    userService,
		log:            log,
	}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/billing/v1")
	h.Post("checkout", serverutils.JwtMiddleware, UserContext(c.userService), c.CreateCheckout)

	// The gateway authenticates through the payload signature, not a JWT.
	h.Post("webhook", c.Webhook)
}

func (c *billingController) CreateCheckout(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	res, err := c.billingService.CreateCheckout(ctx.Context(), user.Id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create checkout", res))
}

// Webhook always acknowledges with 200. Returning an error status makes the
// gateway retry forever, so processing failures are logged instead.
func (c *billingController) Webhook(ctx *fiber.Ctx) error {
	var req dto.BillingWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.log.Warn("billing", "unparseable webhook body", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{}))
	}

	if err := c.billingService.HandleWebhook(ctx.Context(), &req); err != nil {
		c.log.Error("billing", "webhook processing failed", map[string]interface{}{
			"event_id": req.EventId,
			"type":     req.EventType,
			"error":    err.Error(),
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{}))
}

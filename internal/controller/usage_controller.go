package controller

import (
	"mathtutor-be/internal/pkg/serverutils"
	"mathtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUsageController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	Streak(ctx *fiber.Ctx) error
}

type usageController struct {
	usageService  service.IUsageService
	streakService service.IStreakService
	userService   service.IUserService
}

func NewUsageController(usageService service.IUsageService, streakService service.IStreakService, userService service.IUserService) IUsageController {
	return &usageController{
		usageService:  usageService,
		streakService: streakService,
		userService:   userService,
	}
}

func (c *usageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/usage/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(UserContext(c.userService))
	h.Get("me", c.Summary)
	h.Post("streak/touch", c.Streak)
}

func (c *usageController) Summary(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	res, err := c.usageService.Summary(ctx.Context(), user)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get usage", res))
}

func (c *usageController) Streak(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	res, err := c.streakService.Touch(ctx.Context(), user.Id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success touch streak", res))
}

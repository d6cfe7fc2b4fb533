package controller

import (
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/pkg/serverutils"
	"mathtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShareController interface {
	RegisterRoutes(r fiber.Router)
	Share(ctx *fiber.Ctx) error
	Unshare(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type shareController struct {
	shareService service.IShareService
	userService  service.IUserService
}

func NewShareController(shareService service.IShareService, userService service.IUserService) IShareController {
	return &shareController{
		shareService: shareService,
		userService:  userService,
	}
}

func (c *shareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/share/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(UserContext(c.userService))
	h.Post("", c.Share)
	h.Delete("", c.Unshare)

	// Public resolution, no auth. Inactive and unknown ids both 404.
	p := r.Group("/public/v1")
	p.Get("share/:shareId", c.Resolve)
}

func (c *shareController) Share(ctx *fiber.Ctx) error {
	user := currentUser(ctx)

	var req dto.ShareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shareService.Share(ctx.Context(), user.Id, &req)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success share item", res))
}

func (c *shareController) Unshare(ctx *fiber.Ctx) error {
	user := currentUser(ctx)

	var req dto.UnshareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	unshared, err := c.shareService.Unshare(ctx.Context(), user.Id, &req)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success unshare item", dto.UnshareResponse{Unshared: unshared}))
}

func (c *shareController) Resolve(ctx *fiber.Ctx) error {
	shareId, err := uuid.Parse(ctx.Params("shareId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "share not found")
	}

	res, err := c.shareService.Resolve(ctx.Context(), shareId)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve share", res))
}

package controller

import (
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/pkg/serverutils"
	"mathtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IThreadController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
}

type threadController struct {
	threadService service.IThreadService
	userService   service.IUserService
}

func NewThreadController(threadService service.IThreadService, userService service.IUserService) IThreadController {
	return &threadController{
		threadService: threadService,
		userService:   userService,
	}
}

func (c *threadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/thread/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(UserContext(c.userService))
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/messages", c.AppendMessage)
}

func (c *threadController) Create(ctx *fiber.Ctx) error {
	user := currentUser(ctx)

	var req dto.CreateThreadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.threadService.Create(ctx.Context(), user.Id, &req)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create thread", res))
}

func (c *threadController) List(ctx *fiber.Ctx) error {
	user := currentUser(ctx)

	var req dto.ListThreadsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.threadService.List(ctx.Context(), user.Id, &req)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list threads", res))
}

func (c *threadController) Show(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid thread id")
	}

	res, err := c.threadService.Show(ctx.Context(), user.Id, id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show thread", res))
}

func (c *threadController) Update(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid thread id")
	}

	var req dto.UpdateThreadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.threadService.Update(ctx.Context(), user.Id, &req); err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update thread", fiber.Map{"id": id}))
}

func (c *threadController) Delete(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid thread id")
	}

	if err := c.threadService.Delete(ctx.Context(), user.Id, id); err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete thread", fiber.Map{"id": id}))
}

func (c *threadController) AppendMessage(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid thread id")
	}

	var req dto.AppendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.ThreadId = id
	req.Id = nil

	res, err := c.threadService.Append(ctx.Context(), user.Id, &req)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success append message", res))
}

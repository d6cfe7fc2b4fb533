package controller

import (
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/pkg/serverutils"
	"mathtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IArtifactController interface {
	RegisterRoutes(r fiber.Router)
}

type artifactController struct {
	artifactService service.IArtifactService
	userService     service.IUserService
}

func NewArtifactController(artifactService service.IArtifactService, userService service.IUserService) IArtifactController {
	return &artifactController{
		artifactService: artifactService,
		userService:     userService,
	}
}

func (c *artifactController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/artifact/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(UserContext(c.userService))

	h.Get("graphs", c.ListGraphs)
	h.Get("graphs/:id", c.ShowGraph)
	h.Get("flashcard-sets", c.ListFlashcardSets)
	h.Get("flashcard-sets/:id", c.ShowFlashcardSet)
	h.Patch("flashcard-sets/:id/progress", c.UpdateFlashcardSetProgress)
	h.Get("solutions", c.ListSolutions)
	h.Get("solutions/:id", c.ShowSolution)
	h.Get("practice-tests", c.ListPracticeTests)
	h.Get("practice-tests/:id", c.ShowPracticeTest)
	h.Patch("practice-tests/:id/progress", c.UpdatePracticeTestProgress)
}

func paramId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (c *artifactController) ListGraphs(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	res, err := c.artifactService.ListGraphs(ctx.Context(), user.Id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list graphs", res))
}

func (c *artifactController) ShowGraph(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := paramId(ctx)
	if err != nil {
		return err
	}
	res, err := c.artifactService.GetGraph(ctx.Context(), user.Id, id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show graph", res))
}

func (c *artifactController) ListFlashcardSets(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	res, err := c.artifactService.ListFlashcardSets(ctx.Context(), user.Id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list flashcard sets", res))
}

func (c *artifactController) ShowFlashcardSet(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := paramId(ctx)
	if err != nil {
		return err
	}
	res, err := c.artifactService.GetFlashcardSet(ctx.Context(), user.Id, id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show flashcard set", res))
}

func (c *artifactController) UpdateFlashcardSetProgress(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := paramId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProgressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Id = id

	if err := c.artifactService.UpdateFlashcardSetProgress(ctx.Context(), user.Id, &req); err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update progress", fiber.Map{"id": id}))
}

func (c *artifactController) ListSolutions(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	res, err := c.artifactService.ListSolutions(ctx.Context(), user.Id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list solutions", res))
}

func (c *artifactController) ShowSolution(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := paramId(ctx)
	if err != nil {
		return err
	}
	res, err := c.artifactService.GetSolution(ctx.Context(), user.Id, id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show solution", res))
}

func (c *artifactController) ListPracticeTests(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	res, err := c.artifactService.ListPracticeTests(ctx.Context(), user.Id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list practice tests", res))
}

func (c *artifactController) ShowPracticeTest(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := paramId(ctx)
	if err != nil {
		return err
	}
	res, err := c.artifactService.GetPracticeTest(ctx.Context(), user.Id, id)
	if err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show practice test", res))
}

func (c *artifactController) UpdatePracticeTestProgress(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	id, err := paramId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProgressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Id = id

	if err := c.artifactService.UpdatePracticeTestProgress(ctx.Context(), user.Id, &req); err != nil {
		return serviceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update progress", fiber.Map{"id": id}))
}

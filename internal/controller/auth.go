package controller

import (
	"errors"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserContext resolves the authenticated identity to a local user row and
// stashes it in request locals. Must run after the JWT middleware.
func UserContext(userService service.IUserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		externalId, _ := ctx.Locals("external_id").(string)
		if externalId == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthenticated")
		}
		email, _ := ctx.Locals("email").(string)

		user, err := userService.GetOrCreateByExternalId(ctx.Context(), externalId, email, "")
		if err != nil {
			return err
		}
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func currentUser(ctx *fiber.Ctx) *entity.User {
	user, _ := ctx.Locals("user").(*entity.User)
	return user
}

// serviceError maps service-layer sentinels onto HTTP status codes.
func serviceError(err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if errors.Is(err, service.ErrForbidden) {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}
	return err
}

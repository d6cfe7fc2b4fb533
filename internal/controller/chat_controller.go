package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/pkg/serverutils"
	"mathtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	userService service.IUserService
	log         logger.ILogger
}

func NewChatController(chatService service.IChatService, userService service.IUserService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		userService: userService,
		log:         log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(UserContext(c.userService))
	h.Post(":threadId/stream", c.Stream)
}

// Stream runs one tutoring turn and pushes its events over SSE. The
// connection closes after the terminal "done" or "error" event.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	threadId, err := uuid.Parse(ctx.Params("threadId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid thread id")
	}

	var req dto.ChatStreamRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.ThreadId = threadId

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	userId := user.Id
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The fiber handler has returned by the time this runs, so the
		// request context is gone. The turn carries its own lifetime.
		streamCtx := context.Background()

		emit := func(event string, payload interface{}) error {
			data, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
				return err
			}
			return w.Flush()
		}

		if err := c.chatService.RunTurn(streamCtx, userId, &req, emit); err != nil {
			c.log.Error("chat", "turn failed", map[string]interface{}{
				"thread": threadId.String(),
				"user":   userId.String(),
				"error":  err.Error(),
			})
			emit("error", map[string]interface{}{"message": err.Error()})
		}
	}))

	return nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"
	"mathtutor-be/pkg/llm"
	"mathtutor-be/pkg/tools"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const tutorSystemPrompt = `You are a patient math tutor. Explain concepts step by step
and prefer guiding questions over giving away answers. When the student would benefit
from a graph, flashcards, a worked solution, or a practice test, call the matching tool
instead of describing the artifact in text. Never call a tool the student did not ask
for or clearly need.`

// EmitFunc pushes one named event to the client mid-stream.
type EmitFunc func(event string, payload interface{}) error

type IChatService interface {
	// RunTurn executes one full chat exchange: persist the student message,
	// stream the model reply, dispatch tool calls, persist the assistant
	// message. Events are pushed through emit as they happen.
	RunTurn(ctx context.Context, userId uuid.UUID, req *dto.ChatStreamRequest, emit EmitFunc) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	provider         llm.Provider
	dispatcher       *tools.Dispatcher
	threadService    IThreadService
	streakService    IStreakService
	userService      IUserService
	publisherService IPublisherService
	activeTurns      *gocache.Cache
	log              logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	dispatcher *tools.Dispatcher,
	threadService IThreadService,
	streakService IStreakService,
	userService IUserService,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		provider:         provider,
		dispatcher:       dispatcher,
		threadService:    threadService,
		streakService:    streakService,
		userService:      userService,
		publisherService: publisherService,
		activeTurns:      gocache.New(2*time.Minute, 5*time.Minute),
		log:              log,
	}
}

func (s *chatService) RunTurn(ctx context.Context, userId uuid.UUID, req *dto.ChatStreamRequest, emit EmitFunc) error {
	// One turn per thread at a time. The entry expires on its own if a
	// crashed turn never cleans up.
	turnKey := req.ThreadId.String()
	if err := s.activeTurns.Add(turnKey, userId, gocache.DefaultExpiration); err != nil {
		return fmt.Errorf("a turn is already running for this thread")
	}
	defer s.activeTurns.Delete(turnKey)

	user, err := s.userService.GetById(ctx, userId)
	if err != nil {
		return err
	}

	thread, err := s.threadService.FindOwned(ctx, userId, req.ThreadId)
	if err != nil {
		return err
	}
	firstExchange := thread.MessageCount == 0

	// Chat activity is what keeps the streak alive.
	if _, err := s.streakService.Touch(ctx, userId); err != nil {
		s.log.Warn("chat", "streak touch failed", map[string]interface{}{
			"user":  userId.String(),
			"error": err.Error(),
		})
	}

	userMsg, err := s.threadService.Append(ctx, userId, &dto.AppendMessageRequest{
		ThreadId: req.ThreadId,
		Role:     constant.MessageRoleUser,
		Parts:    []entity.MessagePart{{Type: "text", Text: req.Content}},
	})
	if err != nil {
		return err
	}
	if err := emit("message-appended", map[string]interface{}{
		"id":    userMsg.Id,
		"role":  constant.MessageRoleUser,
		"order": userMsg.Order,
	}); err != nil {
		return err
	}

	history, err := s.buildHistory(ctx, req.ThreadId)
	if err != nil {
		return err
	}

	stream, err := s.provider.StreamChat(ctx, tutorSystemPrompt, history, s.dispatcher.Declarations())
	if err != nil {
		return err
	}
	defer stream.Close()

	assistantMsgId := uuid.New()
	var textBuilder strings.Builder
	var assistantParts []entity.MessagePart

	for {
		event, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Error("chat", "model stream failed", map[string]interface{}{
				"thread": req.ThreadId.String(),
				"error":  err.Error(),
			})
			emit("error", map[string]interface{}{"message": "the tutor is unavailable right now"})
			return nil
		}

		if event.Text != "" {
			textBuilder.WriteString(event.Text)
			if err := emit("text-delta", map[string]interface{}{"text": event.Text}); err != nil {
				return err
			}
			continue
		}

		if len(event.ToolCalls) > 0 {
			responses := make([]llm.ToolResponse, 0, len(event.ToolCalls))
			for _, call := range event.ToolCalls {
				if err := emit("tool-call", map[string]interface{}{"name": call.Name}); err != nil {
					return err
				}

				result := s.dispatcher.Dispatch(ctx, user, req.ThreadId, &assistantMsgId, call)
				assistantParts = append(assistantParts, toolPart(call.Name, result))
				responses = append(responses, llm.ToolResponse{
					Name:     call.Name,
					Response: result.ToResponse(),
				})

				if err := emit("tool-result", result.ToResponse()); err != nil {
					return err
				}
			}
			if err := stream.SendToolResponses(ctx, responses); err != nil {
				s.log.Error("chat", "tool response relay failed", map[string]interface{}{
					"thread": req.ThreadId.String(),
					"error":  err.Error(),
				})
				emit("error", map[string]interface{}{"message": "the tutor is unavailable right now"})
				return nil
			}
		}
	}

	if text := textBuilder.String(); text != "" {
		assistantParts = append([]entity.MessagePart{{Type: "text", Text: text}}, assistantParts...)
	}
	if len(assistantParts) == 0 {
		assistantParts = []entity.MessagePart{{Type: "text", Text: ""}}
	}

	assistantMsg, err := s.threadService.Append(ctx, userId, &dto.AppendMessageRequest{
		ThreadId: req.ThreadId,
		Id:       &assistantMsgId,
		Role:     constant.MessageRoleAssistant,
		Parts:    assistantParts,
	})
	if err != nil {
		return err
	}
	if err := emit("message-appended", map[string]interface{}{
		"id":    assistantMsg.Id,
		"role":  constant.MessageRoleAssistant,
		"order": assistantMsg.Order,
	}); err != nil {
		return err
	}

	if firstExchange {
		if err := s.publisherService.Publish(dto.GenerateTitleMessage{ThreadId: req.ThreadId}); err != nil {
			s.log.Warn("chat", "title job publish failed", map[string]interface{}{
				"thread": req.ThreadId.String(),
				"error":  err.Error(),
			})
		}
	}

	return emit("done", map[string]interface{}{})
}

func toolPart(name string, result *tools.Result) entity.MessagePart {
	part := entity.MessagePart{
		Type:       "tool",
		ToolName:   name,
		ToolStatus: result.Status,
		Result:     result.ToResponse(),
	}
	if result.ArtifactId != nil {
		part.ArtifactKind = string(result.ArtifactKind)
		id := *result.ArtifactId
		part.ArtifactId = &id
	}
	return part
}

// buildHistory flattens the stored transcript into provider messages. Tool
// parts are summarized as text so old turns stay cheap.
func (s *chatService) buildHistory(ctx context.Context, threadId uuid.UUID) ([]llm.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByThreadId{ThreadId: threadId},
		specification.OrderBy{Field: "ord"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		var b strings.Builder
		for _, part := range msg.Parts {
			switch part.Type {
			case "text":
				b.WriteString(part.Text)
			case "tool":
				fmt.Fprintf(&b, "\n[used %s: %s]", part.ToolName, part.ToolStatus)
			}
		}
		content := strings.TrimSpace(b.String())
		if content == "" {
			continue
		}
		history = append(history, llm.Message{Role: msg.Role, Content: content})
	}
	return history, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"
	"mathtutor-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const titleMaxLen = 80

type ITitleService interface {
	// Consume starts draining title-generation jobs until ctx is done.
	Consume(ctx context.Context) error
}

type titleService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	provider      llm.Provider
	titleModel    string
	threadService IThreadService
	log           logger.ILogger
}

func NewTitleService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	titleModel string,
	threadService IThreadService,
	log logger.ILogger,
) ITitleService {
	return &titleService{
		pubSub:        pubSub,
		topicName:     topicName,
		uowFactory:    uowFactory,
		provider:      provider,
		titleModel:    titleModel,
		threadService: threadService,
		log:           log,
	}
}

func (s *titleService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *titleService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerateTitleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("title", "malformed job payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	thread, err := uow.ThreadRepository().FindOne(ctx, specification.ByID{ID: payload.ThreadId})
	if err != nil {
		s.log.Error("title", "thread lookup failed", map[string]interface{}{
			"thread": payload.ThreadId.String(),
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}
	if thread == nil {
		// Thread deleted before the job ran.
		msg.Ack()
		return
	}

	firstMessages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByThreadId{ThreadId: payload.ThreadId},
		specification.OrderBy{Field: "ord"},
		specification.Pagination{Limit: 2},
	)
	if err != nil {
		msg.Nack()
		return
	}
	if len(firstMessages) == 0 {
		msg.Ack()
		return
	}

	var transcript strings.Builder
	for _, m := range firstMessages {
		for _, part := range m.Parts {
			if part.Type == "text" && part.Text != "" {
				fmt.Fprintf(&transcript, "%s: %s\n", m.Role, part.Text)
			}
		}
	}

	prompt := fmt.Sprintf(`Write a short title (at most six words) for this math
tutoring conversation. Respond with the title only, no quotes.

%s`, transcript.String())

	title, err := s.provider.Generate(ctx, prompt, llm.WithModel(s.titleModel))
	if err != nil {
		s.log.Warn("title", "generation failed", map[string]interface{}{
			"thread": payload.ThreadId.String(),
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	title = sanitizeTitle(title)
	if title == "" {
		msg.Ack()
		return
	}

	if err := uow.ThreadRepository().UpdateTitle(ctx, payload.ThreadId, title, thread.Preview); err != nil {
		msg.Nack()
		return
	}

	s.log.Info("title", "thread titled", map[string]interface{}{
		"thread": payload.ThreadId.String(),
		"title":  title,
	})
	msg.Ack()
}

func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	title = strings.ReplaceAll(title, "\n", " ")
	// Rune-wise cut, model output is frequently non-ASCII.
	if runes := []rune(title); len(runes) > titleMaxLen {
		title = strings.TrimSpace(string(runes[:titleMaxLen]))
	}
	return title
}

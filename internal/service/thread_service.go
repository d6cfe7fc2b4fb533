package service

import (
	"context"
	"time"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const defaultThreadTitle = "New conversation"

type IThreadService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateThreadRequest) (*dto.CreateThreadResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListThreadsRequest) ([]*dto.ThreadSummary, error)
	Show(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) (*dto.ShowThreadResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateThreadRequest) error
	Delete(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) error
	// Append stores a message at the next dense order position and bumps
	// the thread counter. Message insert and counter patch run in one
	// transaction so the order sequence never gains gaps.
	Append(ctx context.Context, userId uuid.UUID, req *dto.AppendMessageRequest) (*dto.AppendMessageResponse, error)
	// ReconcileMessageCount recomputes the counter from the message rows.
	ReconcileMessageCount(ctx context.Context, threadId uuid.UUID) error
	// FindOwned returns the thread when it exists and belongs to the user.
	FindOwned(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) (*entity.Thread, error)
}

type threadService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewThreadService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IThreadService {
	return &threadService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *threadService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateThreadRequest) (*dto.CreateThreadResponse, error) {
	title := req.Title
	if title == "" {
		title = defaultThreadTitle
	}

	thread := entity.Thread{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Tags:      req.Tags,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ThreadRepository().Create(ctx, &thread); err != nil {
		return nil, err
	}
	return &dto.CreateThreadResponse{Id: thread.Id}, nil
}

func (s *threadService) List(ctx context.Context, userId uuid.UUID, req *dto.ListThreadsRequest) ([]*dto.ThreadSummary, error) {
	specs := []specification.Specification{
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if req.Bookmarked {
		specs = append(specs, specification.BookmarkedOnly{})
	}
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: req.Offset})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	threads, err := uow.ThreadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ThreadSummary, len(threads))
	for i, t := range threads {
		out[i] = toThreadSummary(t)
	}
	return out, nil
}

func toThreadSummary(t *entity.Thread) *dto.ThreadSummary {
	return &dto.ThreadSummary{
		Id:           t.Id,
		Title:        t.Title,
		MessageCount: t.MessageCount,
		Bookmarked:   t.Bookmarked,
		Tags:         t.Tags,
		Preview:      t.Preview,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (s *threadService) FindOwned(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) (*entity.Thread, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	thread, err := uow.ThreadRepository().FindOne(ctx,
		specification.ByID{ID: threadId},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrNotFound
	}
	return thread, nil
}

func (s *threadService) Show(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) (*dto.ShowThreadResponse, error) {
	thread, err := s.FindOwned(ctx, userId, threadId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByThreadId{ThreadId: threadId},
		specification.OrderBy{Field: "ord"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = dto.MessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Parts:     m.Parts,
			Order:     m.Order,
			CreatedAt: m.CreatedAt,
		}
	}

	return &dto.ShowThreadResponse{
		Thread:   *toThreadSummary(thread),
		Messages: out,
	}, nil
}

func (s *threadService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateThreadRequest) error {
	thread, err := s.FindOwned(ctx, userId, req.Id)
	if err != nil {
		return err
	}

	if req.Title != nil {
		thread.Title = *req.Title
	}
	if req.Bookmarked != nil {
		thread.Bookmarked = *req.Bookmarked
	}
	if req.Tags != nil {
		thread.Tags = *req.Tags
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ThreadRepository().Update(ctx, thread)
}

func (s *threadService) Delete(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) error {
	if _, err := s.FindOwned(ctx, userId, threadId); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ThreadRepository().Delete(ctx, threadId); err != nil {
		return err
	}

	// A deleted thread must stop resolving through its public share link.
	if err := uow.ShareRepository().DeactivateByItem(ctx, string(entity.ShareKindThread), threadId); err != nil {
		s.log.Warn("thread", "share deactivation failed after delete", map[string]interface{}{
			"thread": threadId.String(),
			"error":  err.Error(),
		})
	}
	return nil
}

func (s *threadService) Append(ctx context.Context, userId uuid.UUID, req *dto.AppendMessageRequest) (*dto.AppendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	thread, err := uow.ThreadRepository().FindOne(ctx,
		specification.ByID{ID: req.ThreadId},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	if thread == nil {
		uow.Rollback()
		return nil, ErrNotFound
	}

	messageId := uuid.New()
	if req.Id != nil {
		messageId = *req.Id
	}

	message := entity.Message{
		Id:        messageId,
		ThreadId:  req.ThreadId,
		Role:      req.Role,
		Parts:     req.Parts,
		Order:     thread.MessageCount,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.ThreadRepository().IncrementMessageCount(ctx, req.ThreadId); err != nil {
		uow.Rollback()
		return nil, err
	}

	// First user message doubles as the thread preview until a title job
	// rewrites it.
	if message.Order == 0 && req.Role == constant.MessageRoleUser {
		preview := previewText(req.Parts)
		if preview != "" {
			if err := uow.ThreadRepository().UpdateTitle(ctx, req.ThreadId, thread.Title, preview); err != nil {
				uow.Rollback()
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.AppendMessageResponse{Id: message.Id, Order: message.Order}, nil
}

const previewMaxLen = 160

func previewText(parts []entity.MessagePart) string {
	for _, part := range parts {
		if part.Type == "text" && part.Text != "" {
			// Truncate on a rune boundary so multi-byte text never gets
			// split mid-character.
			runes := []rune(part.Text)
			if len(runes) > previewMaxLen {
				return string(runes[:previewMaxLen])
			}
			return part.Text
		}
	}
	return ""
}

func (s *threadService) ReconcileMessageCount(ctx context.Context, threadId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	// The counter feeds order assignment, so it must land one past the
	// highest stored order. MaxOrder returns -1 for an empty thread.
	maxOrder, err := uow.MessageRepository().MaxOrder(ctx, threadId)
	if err != nil {
		return err
	}
	return uow.ThreadRepository().SetMessageCount(ctx, threadId, maxOrder+1)
}

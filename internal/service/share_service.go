package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shareCacheTTL = 5 * time.Minute

type IShareService interface {
	// Share publishes an item. Sharing an already shared item returns the
	// existing record, reactivating it when needed.
	Share(ctx context.Context, userId uuid.UUID, req *dto.ShareRequest) (*dto.ShareResponse, error)
	// Unshare deactivates the share link and reports whether a live record
	// was actually deactivated. Unsharing something never shared, already
	// inactive, or not owned by the caller is a no-op returning false.
	Unshare(ctx context.Context, userId uuid.UUID, req *dto.UnshareRequest) (bool, error)
	// Resolve loads the public payload behind a share id without any
	// authentication. Inactive and unknown ids are indistinguishable.
	Resolve(ctx context.Context, shareId uuid.UUID) (*dto.ResolveShareResponse, error)
}

type shareService struct {
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client
	log        logger.ILogger
}

func NewShareService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, log logger.ILogger) IShareService {
	return &shareService{
		uowFactory: uowFactory,
		rdb:        rdb,
		log:        log,
	}
}

func shareCacheKey(shareId uuid.UUID) string {
	return "share:" + shareId.String()
}

// verifyOwnership checks that the target item exists and belongs to the user.
func (s *shareService) verifyOwnership(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, kind entity.ShareKind, itemId uuid.UUID) error {
	owned := []specification.Specification{
		specification.ByID{ID: itemId},
		specification.ByUserId{UserId: userId},
	}

	var found bool
	switch kind {
	case entity.ShareKindThread:
		thread, err := uow.ThreadRepository().FindOne(ctx, owned...)
		if err != nil {
			return err
		}
		found = thread != nil
	case entity.ShareKindGraph:
		graph, err := uow.ArtifactRepository().FindGraph(ctx, owned...)
		if err != nil {
			return err
		}
		found = graph != nil
	case entity.ShareKindFlashcardSet:
		set, err := uow.ArtifactRepository().FindFlashcardSet(ctx, owned...)
		if err != nil {
			return err
		}
		found = set != nil
	case entity.ShareKindSolution:
		solution, err := uow.ArtifactRepository().FindSolution(ctx, owned...)
		if err != nil {
			return err
		}
		found = solution != nil
	case entity.ShareKindPracticeTest:
		test, err := uow.ArtifactRepository().FindPracticeTest(ctx, owned...)
		if err != nil {
			return err
		}
		found = test != nil
	default:
		return fmt.Errorf("unsupported share kind %q", kind)
	}

	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *shareService) Share(ctx context.Context, userId uuid.UUID, req *dto.ShareRequest) (*dto.ShareResponse, error) {
	kind, ok := entity.ParseShareKind(req.ItemKind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", req.ItemKind)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.verifyOwnership(ctx, uow, userId, kind, req.ItemId); err != nil {
		return nil, err
	}

	shareRepo := uow.ShareRepository()
	existing, err := shareRepo.FindOne(ctx, specification.ByItem{Kind: string(kind), ItemId: req.ItemId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.Active {
			if err := shareRepo.SetActive(ctx, existing.Id, true); err != nil {
				return nil, err
			}
			s.invalidate(ctx, existing.Id)
		}
		return &dto.ShareResponse{ShareId: existing.Id, Active: true}, nil
	}

	record := entity.ShareRecord{
		Id:        uuid.New(),
		ItemKind:  kind,
		ItemId:    req.ItemId,
		UserId:    userId,
		Active:    true,
		CreatedAt: time.Now(),
	}
	err = shareRepo.Create(ctx, &record)
	if err != nil {
		// Lost a create race: another request inserted the record first.
		// Fall back to reactivating the surviving row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := shareRepo.FindOne(ctx, specification.ByItem{Kind: string(kind), ItemId: req.ItemId})
			if findErr != nil {
				return nil, findErr
			}
			if winner == nil {
				return nil, err
			}
			if !winner.Active {
				if err := shareRepo.SetActive(ctx, winner.Id, true); err != nil {
					return nil, err
				}
			}
			return &dto.ShareResponse{ShareId: winner.Id, Active: true}, nil
		}
		return nil, err
	}

	return &dto.ShareResponse{ShareId: record.Id, Active: true}, nil
}

func (s *shareService) Unshare(ctx context.Context, userId uuid.UUID, req *dto.UnshareRequest) (bool, error) {
	kind, ok := entity.ParseShareKind(req.ItemKind)
	if !ok {
		return false, fmt.Errorf("unknown item kind %q", req.ItemKind)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	shareRepo := uow.ShareRepository()
	record, err := shareRepo.FindOne(ctx, specification.ByItem{Kind: string(kind), ItemId: req.ItemId})
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}
	// Only the owner may deactivate; anyone else gets a silent no-op so the
	// toggle leaks nothing about who shared what.
	if record.UserId != userId {
		return false, nil
	}
	if !record.Active {
		return false, nil
	}

	if err := shareRepo.SetActive(ctx, record.Id, false); err != nil {
		return false, err
	}
	s.invalidate(ctx, record.Id)
	return true, nil
}

func (s *shareService) invalidate(ctx context.Context, shareId uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, shareCacheKey(shareId)).Err(); err != nil {
		s.log.Warn("share", "cache invalidation failed", map[string]interface{}{
			"share": shareId.String(),
			"error": err.Error(),
		})
	}
}

func (s *shareService) Resolve(ctx context.Context, shareId uuid.UUID) (*dto.ResolveShareResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, shareCacheKey(shareId)).Result()
		if err == nil {
			var resp dto.ResolveShareResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.ShareRepository().FindOne(ctx,
		specification.ByID{ID: shareId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	item, err := s.loadPublicItem(ctx, uow, record)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResolveShareResponse{
		ItemKind: string(record.ItemKind),
		SharedAt: record.CreatedAt,
		Item:     item,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, shareCacheKey(shareId), data, shareCacheTTL).Err(); err != nil {
				s.log.Warn("share", "cache write failed", map[string]interface{}{
					"share": shareId.String(),
					"error": err.Error(),
				})
			}
		}
	}

	return resp, nil
}

func (s *shareService) loadPublicItem(ctx context.Context, uow unitofwork.UnitOfWork, record *entity.ShareRecord) (interface{}, error) {
	byId := specification.ByID{ID: record.ItemId}

	switch record.ItemKind {
	case entity.ShareKindThread:
		thread, err := uow.ThreadRepository().FindOne(ctx, byId)
		if err != nil {
			return nil, err
		}
		if thread == nil {
			return nil, ErrNotFound
		}
		messages, err := uow.MessageRepository().FindAll(ctx,
			specification.ByThreadId{ThreadId: thread.Id},
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
		return dto.ShowThreadResponse{Thread: *toThreadSummary(thread), Messages: out}, nil
	case entity.ShareKindGraph:
		graph, err := uow.ArtifactRepository().FindGraph(ctx, byId)
		if err != nil {
			return nil, err
		}
		if graph == nil {
			return nil, ErrNotFound
		}
		return toGraphResponse(graph), nil
	case entity.ShareKindFlashcardSet:
		set, err := uow.ArtifactRepository().FindFlashcardSet(ctx, byId)
		if err != nil {
			return nil, err
		}
		if set == nil {
			return nil, ErrNotFound
		}
		return toFlashcardSetResponse(set), nil
	case entity.ShareKindSolution:
		solution, err := uow.ArtifactRepository().FindSolution(ctx, byId)
		if err != nil {
			return nil, err
		}
		if solution == nil {
			return nil, ErrNotFound
		}
		return toSolutionResponse(solution), nil
	case entity.ShareKindPracticeTest:
		test, err := uow.ArtifactRepository().FindPracticeTest(ctx, byId)
		if err != nil {
			return nil, err
		}
		if test == nil {
			return nil, ErrNotFound
		}
		return toPracticeTestResponse(test), nil
	}
	return nil, fmt.Errorf("unsupported share kind %q", record.ItemKind)
}

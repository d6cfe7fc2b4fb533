package service

import (
	"context"
	"time"

	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"
	"mathtutor-be/pkg/events"
	pktNats "mathtutor-be/pkg/nats"

	"github.com/google/uuid"
)

type IArtifactService interface {
	// Sink methods used by the tool dispatcher. Ids are assigned on save.
	SaveGraph(ctx context.Context, graph *entity.GraphArtifact) error
	SaveFlashcardSet(ctx context.Context, set *entity.FlashcardSet) error
	SaveSolution(ctx context.Context, solution *entity.Solution) error
	SavePracticeTest(ctx context.Context, test *entity.PracticeTest) error

	GetGraph(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.GraphResponse, error)
	ListGraphs(ctx context.Context, userId uuid.UUID) ([]*dto.GraphResponse, error)
	GetFlashcardSet(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.FlashcardSetResponse, error)
	ListFlashcardSets(ctx context.Context, userId uuid.UUID) ([]*dto.FlashcardSetResponse, error)
	GetSolution(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SolutionResponse, error)
	ListSolutions(ctx context.Context, userId uuid.UUID) ([]*dto.SolutionResponse, error)
	GetPracticeTest(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PracticeTestResponse, error)
	ListPracticeTests(ctx context.Context, userId uuid.UUID) ([]*dto.PracticeTestResponse, error)

	// UpdateFlashcardSetProgress folds one study attempt into the set.
	UpdateFlashcardSetProgress(ctx context.Context, userId uuid.UUID, req *dto.UpdateProgressRequest) error
	UpdatePracticeTestProgress(ctx context.Context, userId uuid.UUID, req *dto.UpdateProgressRequest) error
}

type artifactService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewArtifactService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IArtifactService {
	return &artifactService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *artifactService) publishCreated(ctx context.Context, userId uuid.UUID, kind entity.ArtifactKind, id uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewArtifactCreated(userId.String(), string(kind), id.String())
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("artifact", "event publish failed", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
	}
}

func (s *artifactService) SaveGraph(ctx context.Context, graph *entity.GraphArtifact) error {
	if graph.Id == uuid.Nil {
		graph.Id = uuid.New()
	}
	graph.CreatedAt = time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ArtifactRepository().CreateGraph(ctx, graph); err != nil {
		return err
	}
	s.publishCreated(ctx, graph.UserId, entity.ArtifactKindGraph, graph.Id)
	return nil
}

func (s *artifactService) SaveFlashcardSet(ctx context.Context, set *entity.FlashcardSet) error {
	if set.Id == uuid.Nil {
		set.Id = uuid.New()
	}
	set.CreatedAt = time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ArtifactRepository().CreateFlashcardSet(ctx, set); err != nil {
		return err
	}
	s.publishCreated(ctx, set.UserId, entity.ArtifactKindFlashcardSet, set.Id)
	return nil
}

func (s *artifactService) SaveSolution(ctx context.Context, solution *entity.Solution) error {
	if solution.Id == uuid.Nil {
		solution.Id = uuid.New()
	}
	solution.CreatedAt = time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ArtifactRepository().CreateSolution(ctx, solution); err != nil {
		return err
	}
	s.publishCreated(ctx, solution.UserId, entity.ArtifactKindSolution, solution.Id)
	return nil
}

func (s *artifactService) SavePracticeTest(ctx context.Context, test *entity.PracticeTest) error {
	if test.Id == uuid.Nil {
		test.Id = uuid.New()
	}
	test.CreatedAt = time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ArtifactRepository().CreatePracticeTest(ctx, test); err != nil {
		return err
	}
	s.publishCreated(ctx, test.UserId, entity.ArtifactKindPracticeTest, test.Id)
	return nil
}

func toGraphResponse(g *entity.GraphArtifact) *dto.GraphResponse {
	return &dto.GraphResponse{
		Id:        g.Id,
		ThreadId:  g.ThreadId,
		Title:     g.Title,
		XMin:      g.XMin,
		XMax:      g.XMax,
		Series:    g.Series,
		Tags:      g.Tags,
		CreatedAt: g.CreatedAt,
	}
}

func (s *artifactService) GetGraph(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.GraphResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	graph, err := uow.ArtifactRepository().FindGraph(ctx,
		specification.ByID{ID: id},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if graph == nil {
		return nil, ErrNotFound
	}
	return toGraphResponse(graph), nil
}

func (s *artifactService) ListGraphs(ctx context.Context, userId uuid.UUID) ([]*dto.GraphResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	graphs, err := uow.ArtifactRepository().FindAllGraphs(ctx,
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GraphResponse, len(graphs))
	for i, g := range graphs {
		out[i] = toGraphResponse(g)
	}
	return out, nil
}

func toFlashcardSetResponse(f *entity.FlashcardSet) *dto.FlashcardSetResponse {
	return &dto.FlashcardSetResponse{
		Id:            f.Id,
		ThreadId:      f.ThreadId,
		Title:         f.Title,
		Topic:         f.Topic,
		Cards:         f.Cards,
		Tags:          f.Tags,
		MasteryScore:  f.MasteryScore,
		AttemptCount:  f.AttemptCount,
		LastStudiedAt: f.LastStudiedAt,
		CreatedAt:     f.CreatedAt,
	}
}

func (s *artifactService) GetFlashcardSet(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.FlashcardSetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	set, err := uow.ArtifactRepository().FindFlashcardSet(ctx,
		specification.ByID{ID: id},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrNotFound
	}
	return toFlashcardSetResponse(set), nil
}

func (s *artifactService) ListFlashcardSets(ctx context.Context, userId uuid.UUID) ([]*dto.FlashcardSetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sets, err := uow.ArtifactRepository().FindAllFlashcardSets(ctx,
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FlashcardSetResponse, len(sets))
	for i, f := range sets {
		out[i] = toFlashcardSetResponse(f)
	}
	return out, nil
}

func toSolutionResponse(sol *entity.Solution) *dto.SolutionResponse {
	return &dto.SolutionResponse{
		Id:        sol.Id,
		ThreadId:  sol.ThreadId,
		Problem:   sol.Problem,
		Steps:     sol.Steps,
		Answer:    sol.Answer,
		Tags:      sol.Tags,
		CreatedAt: sol.CreatedAt,
	}
}

func (s *artifactService) GetSolution(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SolutionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	solution, err := uow.ArtifactRepository().FindSolution(ctx,
		specification.ByID{ID: id},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if solution == nil {
		return nil, ErrNotFound
	}
	return toSolutionResponse(solution), nil
}

func (s *artifactService) ListSolutions(ctx context.Context, userId uuid.UUID) ([]*dto.SolutionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	solutions, err := uow.ArtifactRepository().FindAllSolutions(ctx,
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SolutionResponse, len(solutions))
	for i, sol := range solutions {
		out[i] = toSolutionResponse(sol)
	}
	return out, nil
}

func toPracticeTestResponse(p *entity.PracticeTest) *dto.PracticeTestResponse {
	return &dto.PracticeTestResponse{
		Id:            p.Id,
		ThreadId:      p.ThreadId,
		Title:         p.Title,
		Topic:         p.Topic,
		Questions:     p.Questions,
		Tags:          p.Tags,
		MasteryScore:  p.MasteryScore,
		AttemptCount:  p.AttemptCount,
		LastStudiedAt: p.LastStudiedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func (s *artifactService) GetPracticeTest(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PracticeTestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	test, err := uow.ArtifactRepository().FindPracticeTest(ctx,
		specification.ByID{ID: id},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrNotFound
	}
	return toPracticeTestResponse(test), nil
}

func (s *artifactService) ListPracticeTests(ctx context.Context, userId uuid.UUID) ([]*dto.PracticeTestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tests, err := uow.ArtifactRepository().FindAllPracticeTests(ctx,
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PracticeTestResponse, len(tests))
	for i, p := range tests {
		out[i] = toPracticeTestResponse(p)
	}
	return out, nil
}

// foldMastery blends a new attempt score into the running average.
func foldMastery(current float64, attempts int, score float64) float64 {
	if attempts <= 0 {
		return score
	}
	return (current*float64(attempts) + score) / float64(attempts+1)
}

func (s *artifactService) UpdateFlashcardSetProgress(ctx context.Context, userId uuid.UUID, req *dto.UpdateProgressRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	set, err := uow.ArtifactRepository().FindFlashcardSet(ctx,
		specification.ByID{ID: req.Id},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		return err
	}
	if set == nil {
		return ErrNotFound
	}

	mastery := foldMastery(set.MasteryScore, set.AttemptCount, req.MasteryScore)
	return uow.ArtifactRepository().UpdateFlashcardSetProgress(ctx, set.Id, mastery, set.AttemptCount+1, time.Now())
}

func (s *artifactService) UpdatePracticeTestProgress(ctx context.Context, userId uuid.UUID, req *dto.UpdateProgressRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	test, err := uow.ArtifactRepository().FindPracticeTest(ctx,
		specification.ByID{ID: req.Id},
		specification.ByUserId{UserId: userId},
	)
	if err != nil {
		return err
	}
	if test == nil {
		return ErrNotFound
	}

	mastery := foldMastery(test.MasteryScore, test.AttemptCount, req.MasteryScore)
	return uow.ArtifactRepository().UpdatePracticeTestProgress(ctx, test.Id, mastery, test.AttemptCount+1, time.Now())
}

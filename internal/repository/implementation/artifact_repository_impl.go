package implementation

import (
	"context"
	"errors"
	"time"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/mapper"
	"mathtutor-be/internal/model"
	"mathtutor-be/internal/repository/contract"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArtifactMapper
}

func NewArtifactRepository(db *gorm.DB) contract.ArtifactRepository {
	return &ArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewArtifactMapper(),
	}
}

func (r *ArtifactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ArtifactRepositoryImpl) CreateGraph(ctx context.Context, graph *entity.GraphArtifact) error {
	m := r.mapper.GraphToModel(graph)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*graph = *r.mapper.GraphToEntity(m)
	return nil
}

func (r *ArtifactRepositoryImpl) FindGraph(ctx context.Context, specs ...specification.Specification) (*entity.GraphArtifact, error) {
	var m model.Graph
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GraphToEntity(&m), nil
}

func (r *ArtifactRepositoryImpl) FindAllGraphs(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphArtifact, error) {
	var models []*model.Graph
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.GraphsToEntities(models), nil
}

func (r *ArtifactRepositoryImpl) CreateFlashcardSet(ctx context.Context, set *entity.FlashcardSet) error {
	m := r.mapper.FlashcardSetToModel(set)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*set = *r.mapper.FlashcardSetToEntity(m)
	return nil
}

func (r *ArtifactRepositoryImpl) FindFlashcardSet(ctx context.Context, specs ...specification.Specification) (*entity.FlashcardSet, error) {
	var m model.FlashcardSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.FlashcardSetToEntity(&m), nil
}

func (r *ArtifactRepositoryImpl) FindAllFlashcardSets(ctx context.Context, specs ...specification.Specification) ([]*entity.FlashcardSet, error) {
	var models []*model.FlashcardSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.FlashcardSetsToEntities(models), nil
}

func (r *ArtifactRepositoryImpl) UpdateFlashcardSetProgress(ctx context.Context, id uuid.UUID, masteryScore float64, attemptCount int, lastStudiedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.FlashcardSet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"mastery_score":   masteryScore,
			"attempt_count":   attemptCount,
			"last_studied_at": lastStudiedAt,
		}).Error
}

func (r *ArtifactRepositoryImpl) CreateSolution(ctx context.Context, solution *entity.Solution) error {
	m := r.mapper.SolutionToModel(solution)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*solution = *r.mapper.SolutionToEntity(m)
	return nil
}

func (r *ArtifactRepositoryImpl) FindSolution(ctx context.Context, specs ...specification.Specification) (*entity.Solution, error) {
	var m model.Solution
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SolutionToEntity(&m), nil
}

func (r *ArtifactRepositoryImpl) FindAllSolutions(ctx context.Context, specs ...specification.Specification) ([]*entity.Solution, error) {
	var models []*model.Solution
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SolutionsToEntities(models), nil
}

func (r *ArtifactRepositoryImpl) CreatePracticeTest(ctx context.Context, test *entity.PracticeTest) error {
	m := r.mapper.PracticeTestToModel(test)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*test = *r.mapper.PracticeTestToEntity(m)
	return nil
}

func (r *ArtifactRepositoryImpl) FindPracticeTest(ctx context.Context, specs ...specification.Specification) (*entity.PracticeTest, error) {
	var m model.PracticeTest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PracticeTestToEntity(&m), nil
}

func (r *ArtifactRepositoryImpl) FindAllPracticeTests(ctx context.Context, specs ...specification.Specification) ([]*entity.PracticeTest, error) {
	var models []*model.PracticeTest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.PracticeTestsToEntities(models), nil
}

func (r *ArtifactRepositoryImpl) UpdatePracticeTestProgress(ctx context.Context, id uuid.UUID, masteryScore float64, attemptCount int, lastStudiedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.PracticeTest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"mastery_score":   masteryScore,
			"attempt_count":   attemptCount,
			"last_studied_at": lastStudiedAt,
		}).Error
}

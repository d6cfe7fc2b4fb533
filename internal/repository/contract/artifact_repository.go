package contract

import (
	"context"
	"time"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ArtifactRepository interface {
	CreateGraph(ctx context.Context, graph *entity.GraphArtifact) error
	FindGraph(ctx context.Context, specs ...specification.Specification) (*entity.GraphArtifact, error)
	FindAllGraphs(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphArtifact, error)

	CreateFlashcardSet(ctx context.Context, set *entity.FlashcardSet) error
	FindFlashcardSet(ctx context.Context, specs ...specification.Specification) (*entity.FlashcardSet, error)
	FindAllFlashcardSets(ctx context.Context, specs ...specification.Specification) ([]*entity.FlashcardSet, error)
	UpdateFlashcardSetProgress(ctx context.Context, id uuid.UUID, masteryScore float64, attemptCount int, lastStudiedAt time.Time) error

	CreateSolution(ctx context.Context, solution *entity.Solution) error
	FindSolution(ctx context.Context, specs ...specification.Specification) (*entity.Solution, error)
	FindAllSolutions(ctx context.Context, specs ...specification.Specification) ([]*entity.Solution, error)

	CreatePracticeTest(ctx context.Context, test *entity.PracticeTest) error
	FindPracticeTest(ctx context.Context, specs ...specification.Specification) (*entity.PracticeTest, error)
	FindAllPracticeTests(ctx context.Context, specs ...specification.Specification) ([]*entity.PracticeTest, error)
	UpdatePracticeTestProgress(ctx context.Context, id uuid.UUID, masteryScore float64, attemptCount int, lastStudiedAt time.Time) error
}

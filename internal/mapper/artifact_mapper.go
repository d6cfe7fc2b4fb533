package mapper

import (
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/model"
)

type ArtifactMapper struct{}

func NewArtifactMapper() *ArtifactMapper {
	return &ArtifactMapper{}
}

func (m *ArtifactMapper) GraphToEntity(g *model.Graph) *entity.GraphArtifact {
	if g == nil {
		return nil
	}

	var series []entity.GraphSeries
	fromJSON(g.Series, &series)
	var tags []string
	fromJSON(g.Tags, &tags)

	return &entity.GraphArtifact{
		Id:        g.Id,
		UserId:    g.UserId,
		ThreadId:  g.ThreadId,
		MessageId: g.MessageId,
		Title:     g.Title,
		XMin:      g.XMin,
		XMax:      g.XMax,
		Series:    series,
		Tags:      tags,
		CreatedAt: g.CreatedAt,
	}
}

func (m *ArtifactMapper) GraphToModel(g *entity.GraphArtifact) *model.Graph {
	if g == nil {
		return nil
	}

	return &model.Graph{
		Id:        g.Id,
		UserId:    g.UserId,
		ThreadId:  g.ThreadId,
		MessageId: g.MessageId,
		Title:     g.Title,
		XMin:      g.XMin,
		XMax:      g.XMax,
		Series:    toJSON(g.Series),
		Tags:      toJSON(g.Tags),
		CreatedAt: g.CreatedAt,
	}
}

func (m *ArtifactMapper) GraphsToEntities(graphs []*model.Graph) []*entity.GraphArtifact {
	entities := make([]*entity.GraphArtifact, len(graphs))
	for i, g := range graphs {
		entities[i] = m.GraphToEntity(g)
	}
	return entities
}

func (m *ArtifactMapper) FlashcardSetToEntity(f *model.FlashcardSet) *entity.FlashcardSet {
	if f == nil {
		return nil
	}

	var cards []entity.Flashcard
	fromJSON(f.Cards, &cards)
	var tags []string
	fromJSON(f.Tags, &tags)

	return &entity.FlashcardSet{
		Id:            f.Id,
		UserId:        f.UserId,
		ThreadId:      f.ThreadId,
		MessageId:     f.MessageId,
		Title:         f.Title,
		Topic:         f.Topic,
		Cards:         cards,
		Tags:          tags,
		MasteryScore:  f.MasteryScore,
		AttemptCount:  f.AttemptCount,
		LastStudiedAt: f.LastStudiedAt,
		CreatedAt:     f.CreatedAt,
	}
}

func (m *ArtifactMapper) FlashcardSetToModel(f *entity.FlashcardSet) *model.FlashcardSet {
	if f == nil {
		return nil
	}

	return &model.FlashcardSet{
		Id:            f.Id,
		UserId:        f.UserId,
		ThreadId:      f.ThreadId,
		MessageId:     f.MessageId,
		Title:         f.Title,
		Topic:         f.Topic,
		Cards:         toJSON(f.Cards),
		Tags:          toJSON(f.Tags),
		MasteryScore:  f.MasteryScore,
		AttemptCount:  f.AttemptCount,
		LastStudiedAt: f.LastStudiedAt,
		CreatedAt:     f.CreatedAt,
	}
}

func (m *ArtifactMapper) FlashcardSetsToEntities(sets []*model.FlashcardSet) []*entity.FlashcardSet {
	entities := make([]*entity.FlashcardSet, len(sets))
	for i, f := range sets {
		entities[i] = m.FlashcardSetToEntity(f)
	}
	return entities
}

func (m *ArtifactMapper) SolutionToEntity(s *model.Solution) *entity.Solution {
	if s == nil {
		return nil
	}

	var steps []entity.SolutionStep
	fromJSON(s.Steps, &steps)
	var tags []string
	fromJSON(s.Tags, &tags)

	return &entity.Solution{
		Id:        s.Id,
		UserId:    s.UserId,
		ThreadId:  s.ThreadId,
		MessageId: s.MessageId,
		Problem:   s.Problem,
		Steps:     steps,
		Answer:    s.Answer,
		Tags:      tags,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ArtifactMapper) SolutionToModel(s *entity.Solution) *model.Solution {
	if s == nil {
		return nil
	}

	return &model.Solution{
		Id:        s.Id,
		UserId:    s.UserId,
		ThreadId:  s.ThreadId,
		MessageId: s.MessageId,
		Problem:   s.Problem,
		Steps:     toJSON(s.Steps),
		Answer:    s.Answer,
		Tags:      toJSON(s.Tags),
		CreatedAt: s.CreatedAt,
	}
}

func (m *ArtifactMapper) SolutionsToEntities(solutions []*model.Solution) []*entity.Solution {
	entities := make([]*entity.Solution, len(solutions))
	for i, s := range solutions {
		entities[i] = m.SolutionToEntity(s)
	}
	return entities
}

func (m *ArtifactMapper) PracticeTestToEntity(p *model.PracticeTest) *entity.PracticeTest {
	if p == nil {
		return nil
	}

	var questions []entity.PracticeQuestion
	fromJSON(p.Questions, &questions)
	var tags []string
	fromJSON(p.Tags, &tags)

	return &entity.PracticeTest{
		Id:            p.Id,
		UserId:        p.UserId,
		ThreadId:      p.ThreadId,
		MessageId:     p.MessageId,
		Title:         p.Title,
		Topic:         p.Topic,
		Questions:     questions,
		Tags:          tags,
		MasteryScore:  p.MasteryScore,
		AttemptCount:  p.AttemptCount,
		LastStudiedAt: p.LastStudiedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *ArtifactMapper) PracticeTestToModel(p *entity.PracticeTest) *model.PracticeTest {
	if p == nil {
		return nil
	}

	return &model.PracticeTest{
		Id:            p.Id,
		UserId:        p.UserId,
		ThreadId:      p.ThreadId,
		MessageId:     p.MessageId,
		Title:         p.Title,
		Topic:         p.Topic,
		Questions:     toJSON(p.Questions),
		Tags:          toJSON(p.Tags),
		MasteryScore:  p.MasteryScore,
		AttemptCount:  p.AttemptCount,
		LastStudiedAt: p.LastStudiedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *ArtifactMapper) PracticeTestsToEntities(tests []*model.PracticeTest) []*entity.PracticeTest {
	entities := make([]*entity.PracticeTest, len(tests))
	for i, p := range tests {
		entities[i] = m.PracticeTestToEntity(p)
	}
	return entities
}

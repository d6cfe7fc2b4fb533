package tools

import (
	"context"
	"fmt"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/entity"
	"mathtutor-be/pkg/llm"
)

const (
	practiceDefaultQuestions = 5
	practiceMaxQuestions     = 20
)

// PracticeTestTool asks the model to author a multiple-choice practice test.
type PracticeTestTool struct {
	provider llm.Provider
}

func NewPracticeTestTool(provider llm.Provider) *PracticeTestTool {
	return &PracticeTestTool{provider: provider}
}

func (t *PracticeTestTool) Name() string {
	return "create_practice_test"
}

func (t *PracticeTestTool) FeatureKey() string {
	return constant.FeaturePracticeTests
}

func (t *PracticeTestTool) Declaration() llm.ToolDecl {
	return llm.ToolDecl{
		Name:        t.Name(),
		Description: "Create a multiple-choice practice test so the student can check their understanding of a topic.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"title": {
					Type:        "string",
					Description: "Title for the practice test.",
				},
				"topic": {
					Type:        "string",
					Description: "The math topic to test.",
				},
				"question_count": {
					Type:        "integer",
					Description: "How many questions to generate. Defaults to 5.",
				},
			},
			Required: []string{"title", "topic"},
		},
	}
}

func (t *PracticeTestTool) Run(ctx context.Context, input Input) (*Output, error) {
	title, err := stringArg(input.Args, "title")
	if err != nil {
		return nil, err
	}
	topic, err := stringArg(input.Args, "topic")
	if err != nil {
		return nil, err
	}
	count := intArg(input.Args, "question_count", practiceDefaultQuestions)
	if count < 1 {
		count = practiceDefaultQuestions
	}
	if count > practiceMaxQuestions {
		count = practiceMaxQuestions
	}

	prompt := fmt.Sprintf(`Write exactly %d multiple-choice questions testing %q.
Respond with JSON only, no prose: an array of objects with keys
"prompt", "choices" (array of exactly 4 strings), "correct_index"
(0-based index into choices) and "explanation".`, count, topic)

	reply, err := t.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("practice test generation failed: %w", err)
	}

	var questions []entity.PracticeQuestion
	if err := decodeModelJSON(reply, &questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model produced no questions")
	}
	for i, q := range questions {
		if q.Prompt == "" || len(q.Choices) < 2 {
			return nil, fmt.Errorf("question %d is incomplete", i+1)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			return nil, fmt.Errorf("question %d has an out-of-range answer index", i+1)
		}
	}

	test := &entity.PracticeTest{
		UserId:    input.UserId,
		ThreadId:  input.ThreadId,
		MessageId: input.MessageId,
		Title:     title,
		Topic:     topic,
		Questions: questions,
	}

	return &Output{
		Kind:         entity.ArtifactKindPracticeTest,
		PracticeTest: test,
		Summary: map[string]any{
			"title":          title,
			"topic":          topic,
			"question_count": len(questions),
		},
	}, nil
}

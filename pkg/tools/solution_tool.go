package tools

import (
	"context"
	"fmt"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/entity"
	"mathtutor-be/pkg/llm"
)

// SolutionTool asks the model to produce a step-by-step worked solution.
type SolutionTool struct {
	provider llm.Provider
}

func NewSolutionTool(provider llm.Provider) *SolutionTool {
	return &SolutionTool{provider: provider}
}

func (t *SolutionTool) Name() string {
	return "create_step_by_step_solution"
}

func (t *SolutionTool) FeatureKey() string {
	return constant.FeatureSolutions
}

func (t *SolutionTool) Declaration() llm.ToolDecl {
	return llm.ToolDecl{
		Name:        t.Name(),
		Description: "Produce a worked, step-by-step solution for a specific math problem.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"problem": {
					Type:        "string",
					Description: "The exact problem statement to solve.",
				},
			},
			Required: []string{"problem"},
		},
	}
}

func (t *SolutionTool) Run(ctx context.Context, input Input) (*Output, error) {
	problem, err := stringArg(input.Args, "problem")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Solve this math problem for a student: %q
Respond with JSON only, no prose: an object with keys
"steps" (array of objects with "title", "explanation" and optional
"expression") and "answer" (the final answer as a string).`, problem)

	reply, err := t.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("solution generation failed: %w", err)
	}

	var parsed struct {
		Steps  []entity.SolutionStep `json:"steps"`
		Answer string                `json:"answer"`
	}
	if err := decodeModelJSON(reply, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Steps) == 0 {
		return nil, fmt.Errorf("model produced no solution steps")
	}

	solution := &entity.Solution{
		UserId:    input.UserId,
		ThreadId:  input.ThreadId,
		MessageId: input.MessageId,
		Problem:   problem,
		Steps:     parsed.Steps,
		Answer:    parsed.Answer,
	}

	return &Output{
		Kind:     entity.ArtifactKindSolution,
		Solution: solution,
		Summary: map[string]any{
			"problem":    problem,
			"step_count": len(parsed.Steps),
			"answer":     parsed.Answer,
		},
	}, nil
}

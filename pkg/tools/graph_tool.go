package tools

import (
	"context"
	"fmt"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/entity"
	"mathtutor-be/pkg/llm"
	"mathtutor-be/pkg/mathexpr"
)

const graphSampleSteps = 200

// GraphTool renders function graphs deterministically. It never calls the
// model, the expressions are parsed and sampled locally.
type GraphTool struct{}

func NewGraphTool() *GraphTool {
	return &GraphTool{}
}

func (t *GraphTool) Name() string {
	return "create_function_graph"
}

func (t *GraphTool) FeatureKey() string {
	return constant.FeatureGraphs
}

func (t *GraphTool) Declaration() llm.ToolDecl {
	return llm.ToolDecl{
		Name:        t.Name(),
		Description: "Plot one or more single-variable functions of x over a range. Use for any graphing request.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"title": {
					Type:        "string",
					Description: "Short human-readable title for the graph.",
				},
				"expressions": {
					Type:        "array",
					Description: "Functions of x to plot, e.g. \"x^2\" or \"sin(x)\".",
					Items:       &llm.Schema{Type: "string"},
				},
				"x_min": {
					Type:        "number",
					Description: "Left edge of the x range.",
				},
				"x_max": {
					Type:        "number",
					Description: "Right edge of the x range.",
				},
			},
			Required: []string{"title", "expressions", "x_min", "x_max"},
		},
	}
}

func (t *GraphTool) Run(ctx context.Context, input Input) (*Output, error) {
	title, err := stringArg(input.Args, "title")
	if err != nil {
		return nil, err
	}
	expressions, err := stringSliceArg(input.Args, "expressions")
	if err != nil {
		return nil, err
	}
	if len(expressions) == 0 {
		return nil, fmt.Errorf("expressions must not be empty")
	}
	xMin, err := floatArg(input.Args, "x_min")
	if err != nil {
		return nil, err
	}
	xMax, err := floatArg(input.Args, "x_max")
	if err != nil {
		return nil, err
	}
	if xMax <= xMin {
		return nil, fmt.Errorf("x_max must be greater than x_min")
	}

	series := make([]entity.GraphSeries, 0, len(expressions))
	for _, src := range expressions {
		expr, err := mathexpr.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("cannot plot %q: %w", src, err)
		}
		sampled := mathexpr.Sample(expr, xMin, xMax, graphSampleSteps)
		points := make([]entity.GraphPoint, len(sampled))
		for i, p := range sampled {
			points[i] = entity.GraphPoint{X: p.X, Y: p.Y}
		}
		series = append(series, entity.GraphSeries{
			Expression: src,
			Points:     points,
		})
	}

	graph := &entity.GraphArtifact{
		UserId:    input.UserId,
		ThreadId:  input.ThreadId,
		MessageId: input.MessageId,
		Title:     title,
		XMin:      xMin,
		XMax:      xMax,
		Series:    series,
	}

	return &Output{
		Kind:  entity.ArtifactKindGraph,
		Graph: graph,
		Summary: map[string]any{
			"title":       title,
			"expressions": expressions,
			"x_min":       xMin,
			"x_max":       xMax,
		},
	}, nil
}

package tools

import (
	"context"
	"testing"

	"mathtutor-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphToolRun(t *testing.T) {
	tool := NewGraphTool()
	userId := uuid.New()
	threadId := uuid.New()
	messageId := uuid.New()

	output, err := tool.Run(context.Background(), Input{
		UserId:    userId,
		ThreadId:  threadId,
		MessageId: &messageId,
		Args: map[string]any{
			"title":       "Two curves",
			"expressions": []any{"x^2", "sin(x)"},
			"x_min":       float64(-3),
			"x_max":       float64(3),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ArtifactKindGraph, output.Kind)
	require.NotNil(t, output.Graph)
	assert.Equal(t, userId, output.Graph.UserId)
	assert.Equal(t, threadId, output.Graph.ThreadId)
	require.Len(t, output.Graph.Series, 2)
	assert.Equal(t, "x^2", output.Graph.Series[0].Expression)
	assert.NotEmpty(t, output.Graph.Series[0].Points)
	assert.Equal(t, float64(-3), output.Graph.XMin)
	assert.Equal(t, float64(3), output.Graph.XMax)
}

func TestGraphToolRunDeterministic(t *testing.T) {
	tool := NewGraphTool()
	input := Input{
		UserId:   uuid.New(),
		ThreadId: uuid.New(),
		Args: map[string]any{
			"title":       "Line",
			"expressions": []any{"2*x + 1"},
			"x_min":       float64(0),
			"x_max":       float64(10),
		},
	}

	first, err := tool.Run(context.Background(), input)
	require.NoError(t, err)
	second, err := tool.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Graph.Series, second.Graph.Series)
}

func TestGraphToolRejectsBadInput(t *testing.T) {
	tool := NewGraphTool()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing title", map[string]any{
			"expressions": []any{"x"}, "x_min": float64(0), "x_max": float64(1),
		}},
		{"empty expressions", map[string]any{
			"title": "t", "expressions": []any{}, "x_min": float64(0), "x_max": float64(1),
		}},
		{"unparseable expression", map[string]any{
			"title": "t", "expressions": []any{"x +* 2"}, "x_min": float64(0), "x_max": float64(1),
		}},
		{"inverted range", map[string]any{
			"title": "t", "expressions": []any{"x"}, "x_min": float64(5), "x_max": float64(1),
		}},
		{"non-numeric bound", map[string]any{
			"title": "t", "expressions": []any{"x"}, "x_min": "zero", "x_max": float64(1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tool.Run(context.Background(), Input{
				UserId:   uuid.New(),
				ThreadId: uuid.New(),
				Args:     tt.args,
			})
			assert.Error(t, err)
		})
	}
}

func TestDecodeModelJSON(t *testing.T) {
	var cards []entity.Flashcard

	plain := `[{"front":"a","back":"b"}]`
	require.NoError(t, decodeModelJSON(plain, &cards))
	assert.Len(t, cards, 1)

	fenced := "```json\n[{\"front\":\"a\",\"back\":\"b\"}]\n```"
	cards = nil
	require.NoError(t, decodeModelJSON(fenced, &cards))
	assert.Len(t, cards, 1)

	assert.Error(t, decodeModelJSON("the answer is 42", &cards))
}

package tools

import (
	"context"
	"testing"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/entity"
	"mathtutor-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeGate struct {
	allow    bool
	allowErr error
	recorded []string
}

func (g *fakeGate) Allow(_ context.Context, _ *entity.User, feature string) (bool, error) {
	return g.allow, g.allowErr
}

func (g *fakeGate) Record(_ context.Context, _ *entity.User, feature string) (int, error) {
	g.recorded = append(g.recorded, feature)
	return len(g.recorded), nil
}

type fakeSink struct {
	graphs  int
	failing bool
}

func (s *fakeSink) SaveGraph(_ context.Context, g *entity.GraphArtifact) error {
	if s.failing {
		return assert.AnError
	}
	g.Id = uuid.New()
	s.graphs++
	return nil
}

func (s *fakeSink) SaveFlashcardSet(_ context.Context, set *entity.FlashcardSet) error {
	set.Id = uuid.New()
	return nil
}

func (s *fakeSink) SaveSolution(_ context.Context, sol *entity.Solution) error {
	sol.Id = uuid.New()
	return nil
}

func (s *fakeSink) SavePracticeTest(_ context.Context, t *entity.PracticeTest) error {
	t.Id = uuid.New()
	return nil
}

func graphCall() llm.ToolCall {
	return llm.ToolCall{
		Name: "create_function_graph",
		Args: map[string]any{
			"title":       "Parabola",
			"expressions": []any{"x^2"},
			"x_min":       float64(-5),
			"x_max":       float64(5),
		},
	}
}

func testUser() *entity.User {
	return &entity.User{Id: uuid.New()}
}

func TestDispatchSuccess(t *testing.T) {
	gate := &fakeGate{allow: true}
	sink := &fakeSink{}
	d := NewDispatcher(gate, sink, nopLogger{}, NewGraphTool())

	result := d.Dispatch(context.Background(), testUser(), uuid.New(), nil, graphCall())

	require.Equal(t, StatusOK, result.Status)
	require.NotNil(t, result.ArtifactId)
	assert.Equal(t, entity.ArtifactKindGraph, result.ArtifactKind)
	assert.Equal(t, 1, sink.graphs)
	assert.Equal(t, []string{constant.FeatureGraphs}, gate.recorded)

	response := result.ToResponse()
	assert.Equal(t, StatusOK, response["status"])
	assert.Equal(t, result.ArtifactId.String(), response["artifact_id"])
}

func TestDispatchUnknownTool(t *testing.T) {
	gate := &fakeGate{allow: true}
	sink := &fakeSink{}
	d := NewDispatcher(gate, sink, nopLogger{}, NewGraphTool())

	result := d.Dispatch(context.Background(), testUser(), uuid.New(), nil, llm.ToolCall{Name: "summon_dragon"})

	assert.Equal(t, StatusError, result.Status)
	assert.Empty(t, gate.recorded)
	assert.Equal(t, 0, sink.graphs)
}

func TestDispatchLimitReached(t *testing.T) {
	gate := &fakeGate{allow: false}
	sink := &fakeSink{}
	d := NewDispatcher(gate, sink, nopLogger{}, NewGraphTool())

	result := d.Dispatch(context.Background(), testUser(), uuid.New(), nil, graphCall())

	assert.Equal(t, StatusLimitReached, result.Status)
	assert.Equal(t, 0, sink.graphs)
	assert.Empty(t, gate.recorded)
}

func TestDispatchInvalidArgsLeavesNoTrace(t *testing.T) {
	gate := &fakeGate{allow: true}
	sink := &fakeSink{}
	d := NewDispatcher(gate, sink, nopLogger{}, NewGraphTool())

	call := graphCall()
	call.Args["expressions"] = []any{"not a function!!"}
	result := d.Dispatch(context.Background(), testUser(), uuid.New(), nil, call)

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, 0, sink.graphs)
	assert.Empty(t, gate.recorded)
}

func TestDispatchSaveFailureNotCharged(t *testing.T) {
	gate := &fakeGate{allow: true}
	sink := &fakeSink{failing: true}
	d := NewDispatcher(gate, sink, nopLogger{}, NewGraphTool())

	result := d.Dispatch(context.Background(), testUser(), uuid.New(), nil, graphCall())

	assert.Equal(t, StatusError, result.Status)
	assert.Empty(t, gate.recorded)
}

func TestDispatchCancelledContext(t *testing.T) {
	gate := &fakeGate{allow: true}
	sink := &fakeSink{}
	d := NewDispatcher(gate, sink, nopLogger{}, NewGraphTool())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := d.Dispatch(ctx, testUser(), uuid.New(), nil, graphCall())

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, 0, sink.graphs)
}

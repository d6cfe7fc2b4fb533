package tools

import (
	"context"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	StatusOK           = "ok"
	StatusError        = "error"
	StatusLimitReached = "limit_reached"
)

// Result is what goes back to the model (and into the message transcript)
// after a tool call. A non-ok result never has side effects.
type Result struct {
	Status       string
	Message      string
	ArtifactKind entity.ArtifactKind
	ArtifactId   *uuid.UUID
	Payload      map[string]any
}

// ToResponse renders the result as a function response payload.
func (r *Result) ToResponse() map[string]any {
	out := map[string]any{
		"status": r.Status,
	}
	if r.Message != "" {
		out["message"] = r.Message
	}
	if r.ArtifactId != nil {
		out["artifact_kind"] = string(r.ArtifactKind)
		out["artifact_id"] = r.ArtifactId.String()
	}
	for k, v := range r.Payload {
		out[k] = v
	}
	return out
}

// UsageGate decides whether a feature invocation fits the user's daily
// quota and records consumption after a successful run.
type UsageGate interface {
	Allow(ctx context.Context, user *entity.User, feature string) (bool, error)
	Record(ctx context.Context, user *entity.User, feature string) (int, error)
}

// ArtifactSink persists a produced artifact and fills in its id.
type ArtifactSink interface {
	SaveGraph(ctx context.Context, graph *entity.GraphArtifact) error
	SaveFlashcardSet(ctx context.Context, set *entity.FlashcardSet) error
	SaveSolution(ctx context.Context, solution *entity.Solution) error
	SavePracticeTest(ctx context.Context, test *entity.PracticeTest) error
}

// Dispatcher routes model tool calls to registered tools. Every call runs
// the same pipeline: quota check, tool execution, persistence, usage record.
// A failure at any stage short-circuits with an error result and leaves no
// trace in storage or in the usage counters.
type Dispatcher struct {
	registry map[string]Tool
	gate     UsageGate
	sink     ArtifactSink
	log      logger.ILogger
}

func NewDispatcher(gate UsageGate, sink ArtifactSink, log logger.ILogger, tools ...Tool) *Dispatcher {
	registry := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		registry[tool.Name()] = tool
	}
	return &Dispatcher{
		registry: registry,
		gate:     gate,
		sink:     sink,
		log:      log,
	}
}

// Declarations returns the tool declarations to hand the model.
func (d *Dispatcher) Declarations() []llm.ToolDecl {
	decls := make([]llm.ToolDecl, 0, len(d.registry))
	for _, tool := range d.registry {
		decls = append(decls, tool.Declaration())
	}
	return decls
}

func (d *Dispatcher) Dispatch(ctx context.Context, user *entity.User, threadId uuid.UUID, messageId *uuid.UUID, call llm.ToolCall) *Result {
	if err := ctx.Err(); err != nil {
		return &Result{Status: StatusError, Message: "request cancelled"}
	}

	tool, ok := d.registry[call.Name]
	if !ok {
		d.log.Warn("tools", "unknown tool requested", map[string]interface{}{
			"tool": call.Name,
			"user": user.Id.String(),
		})
		return &Result{Status: StatusError, Message: "unknown tool: " + call.Name}
	}

	allowed, err := d.gate.Allow(ctx, user, tool.FeatureKey())
	if err != nil {
		d.log.Error("tools", "quota check failed", map[string]interface{}{
			"tool":  call.Name,
			"error": err.Error(),
		})
		return &Result{Status: StatusError, Message: "could not verify usage limits"}
	}
	if !allowed {
		return &Result{
			Status:  StatusLimitReached,
			Message: "daily limit reached for this feature, upgrade to pro for unlimited access",
		}
	}

	output, err := tool.Run(ctx, Input{
		UserId:    user.Id,
		ThreadId:  threadId,
		MessageId: messageId,
		Args:      call.Args,
	})
	if err != nil {
		d.log.Warn("tools", "tool run failed", map[string]interface{}{
			"tool":  call.Name,
			"error": err.Error(),
		})
		return &Result{Status: StatusError, Message: err.Error()}
	}

	artifactId, err := d.persist(ctx, output)
	if err != nil {
		d.log.Error("tools", "artifact save failed", map[string]interface{}{
			"tool":  call.Name,
			"kind":  string(output.Kind),
			"error": err.Error(),
		})
		return &Result{Status: StatusError, Message: "could not save the result"}
	}

	// Usage is charged only after the artifact is durably stored.
	if _, err := d.gate.Record(ctx, user, tool.FeatureKey()); err != nil {
		d.log.Error("tools", "usage record failed", map[string]interface{}{
			"tool":  call.Name,
			"error": err.Error(),
		})
	}

	d.log.Info("tools", "tool dispatched", map[string]interface{}{
		"tool":     call.Name,
		"kind":     string(output.Kind),
		"artifact": artifactId.String(),
	})

	return &Result{
		Status:       StatusOK,
		ArtifactKind: output.Kind,
		ArtifactId:   &artifactId,
		Payload:      output.Summary,
	}
}

func (d *Dispatcher) persist(ctx context.Context, output *Output) (uuid.UUID, error) {
	switch output.Kind {
	case entity.ArtifactKindGraph:
		if err := d.sink.SaveGraph(ctx, output.Graph); err != nil {
			return uuid.Nil, err
		}
		return output.Graph.Id, nil
	case entity.ArtifactKindFlashcardSet:
		if err := d.sink.SaveFlashcardSet(ctx, output.Flashcards); err != nil {
			return uuid.Nil, err
		}
		return output.Flashcards.Id, nil
	case entity.ArtifactKindSolution:
		if err := d.sink.SaveSolution(ctx, output.Solution); err != nil {
			return uuid.Nil, err
		}
		return output.Solution.Id, nil
	case entity.ArtifactKindPracticeTest:
		if err := d.sink.SavePracticeTest(ctx, output.PracticeTest); err != nil {
			return uuid.Nil, err
		}
		return output.PracticeTest.Id, nil
	}
	return uuid.Nil, &unknownKindError{kind: output.Kind}
}

type unknownKindError struct {
	kind entity.ArtifactKind
}

func (e *unknownKindError) Error() string {
	return "unknown artifact kind: " + string(e.kind)
}

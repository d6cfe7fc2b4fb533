// Package tools holds the study-artifact generators the chat model can
// invoke mid-conversation, plus the dispatcher that gates, runs, and
// persists their output.
package tools

import (
	"context"
	"fmt"

	"mathtutor-be/internal/entity"
	"mathtutor-be/pkg/llm"

	"github.com/google/uuid"
)

// Input carries the per-invocation context a tool needs.
type Input struct {
	UserId    uuid.UUID
	ThreadId  uuid.UUID
	MessageId *uuid.UUID
	Args      map[string]any
}

// Output is the artifact a tool produced. Exactly one artifact pointer is
// set, matching Kind. Summary is the compact payload handed back to the
// model as the tool result.
type Output struct {
	Kind    entity.ArtifactKind
	Summary map[string]any

	Graph        *entity.GraphArtifact
	Flashcards   *entity.FlashcardSet
	Solution     *entity.Solution
	PracticeTest *entity.PracticeTest
}

// Tool is one callable artifact generator.
type Tool interface {
	Name() string
	// FeatureKey names the usage counter this tool consumes.
	FeatureKey() string
	Declaration() llm.ToolDecl
	Run(ctx context.Context, input Input) (*Output, error)
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return s, nil
}

func floatArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("argument %q must be a number", key)
}

func intArg(args map[string]any, key string, fallback int) int {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return fallback
}

func stringSliceArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing argument %q", key)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array of strings", key)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("argument %q must be an array of non-empty strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Schema describes a tool parameter in a provider-agnostic format.
// Type is one of "object", "string", "number", "integer", "boolean", "array".
type Schema struct {
	Type        string
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
	Enum        []string
}

// ToolDecl declares a function the model may call during a chat round.
type ToolDecl struct {
	Name        string
	Description string
	Parameters  *Schema
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolResponse carries the outcome of a tool call back to the model.
type ToolResponse struct {
	Name     string
	Response map[string]any
}

// StreamEvent is one increment of a streamed reply. Exactly one of Text or
// ToolCalls is set.
type StreamEvent struct {
	Text      string
	ToolCalls []ToolCall
}

// Stream is an in-flight chat exchange. Recv returns io.EOF once the model
// has finished and no tool calls are pending. After an event carrying tool
// calls, the caller must invoke SendToolResponses before calling Recv again.
type Stream interface {
	Recv() (*StreamEvent, error)
	SendToolResponses(ctx context.Context, responses []ToolResponse) error
	Close()
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any LLM backend
type Provider interface {
	// StreamChat opens a streamed exchange with optional tool declarations.
	StreamChat(ctx context.Context, system string, history []Message, tools []ToolDecl, options ...Option) (Stream, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

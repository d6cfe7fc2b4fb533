package gemini

import (
	"context"
	"fmt"
	"io"

	"mathtutor-be/pkg/llm"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiProvider(ctx context.Context, apiKey string, defaultModel string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		client:       client,
		defaultModel: defaultModel,
	}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) model(opts *llm.Options) *genai.GenerativeModel {
	name := p.defaultModel
	if opts.Model != "" {
		name = opts.Model
	}
	m := p.client.GenerativeModel(name)
	if opts.Temperature > 0 {
		m.SetTemperature(float32(opts.Temperature))
	}
	return m
}

func applyOptions(options []llm.Option) *llm.Options {
	opts := &llm.Options{}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}

func toGenaiSchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}

	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	case "array":
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	return out
}

func toGenaiRole(role string) string {
	if role == "assistant" {
		return "model"
	}
	return "user"
}

func (p *GeminiProvider) StreamChat(ctx context.Context, system string, history []llm.Message, tools []llm.ToolDecl, options ...llm.Option) (llm.Stream, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("history must contain at least one message")
	}

	m := p.model(applyOptions(options))
	if system != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(tools))
		for i, tool := range tools {
			decls[i] = &genai.FunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  toGenaiSchema(tool.Parameters),
			}
		}
		m.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	session := m.StartChat()
	for _, msg := range history[:len(history)-1] {
		session.History = append(session.History, &genai.Content{
			Role:  toGenaiRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	last := history[len(history)-1]
	iter := session.SendMessageStream(ctx, genai.Text(last.Content))

	return &geminiStream{session: session, iter: iter}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	m := p.model(applyOptions(options))
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return collectText(resp), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out += string(text)
			}
		}
	}
	return out
}

type geminiStream struct {
	session *genai.ChatSession
	iter    *genai.GenerateContentResponseIterator

	pendingCalls []llm.ToolCall
	awaiting     bool
}

func (s *geminiStream) Recv() (*llm.StreamEvent, error) {
	if s.awaiting {
		return nil, fmt.Errorf("tool responses not yet sent")
	}

	for {
		resp, err := s.iter.Next()
		if err == iterator.Done {
			if len(s.pendingCalls) > 0 {
				calls := s.pendingCalls
				s.pendingCalls = nil
				s.awaiting = true
				return &llm.StreamEvent{ToolCalls: calls}, nil
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		var text string
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				switch v := part.(type) {
				case genai.Text:
					text += string(v)
				case genai.FunctionCall:
					s.pendingCalls = append(s.pendingCalls, llm.ToolCall{
						Name: v.Name,
						Args: v.Args,
					})
				}
			}
		}
		if text != "" {
			return &llm.StreamEvent{Text: text}, nil
		}
		// A chunk may carry only function calls. Keep pulling, the calls
		// are surfaced together once the round ends.
	}
}

func (s *geminiStream) SendToolResponses(ctx context.Context, responses []llm.ToolResponse) error {
	if !s.awaiting {
		return fmt.Errorf("no tool calls awaiting responses")
	}

	parts := make([]genai.Part, len(responses))
	for i, resp := range responses {
		parts[i] = genai.FunctionResponse{
			Name:     resp.Name,
			Response: resp.Response,
		}
	}

	s.iter = s.session.SendMessageStream(ctx, parts...)
	s.awaiting = false
	return nil
}

func (s *geminiStream) Close() {
	s.iter = nil
	s.session = nil
}

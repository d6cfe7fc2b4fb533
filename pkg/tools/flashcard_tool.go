package tools

import (
	"context"
	"fmt"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/entity"
	"mathtutor-be/pkg/llm"
)

const (
	flashcardDefaultCount = 10
	flashcardMaxCount     = 30
)

// FlashcardTool asks the model to author a set of study flashcards.
type FlashcardTool struct {
	provider llm.Provider
}

func NewFlashcardTool(provider llm.Provider) *FlashcardTool {
	return &FlashcardTool{provider: provider}
}

func (t *FlashcardTool) Name() string {
	return "create_flashcard_set"
}

func (t *FlashcardTool) FeatureKey() string {
	return constant.FeatureFlashcards
}

func (t *FlashcardTool) Declaration() llm.ToolDecl {
	return llm.ToolDecl{
		Name:        t.Name(),
		Description: "Create a set of study flashcards for a math topic the student wants to review.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"title": {
					Type:        "string",
					Description: "Title for the flashcard set.",
				},
				"topic": {
					Type:        "string",
					Description: "The math topic the cards should cover.",
				},
				"count": {
					Type:        "integer",
					Description: "How many cards to generate. Defaults to 10.",
				},
			},
			Required: []string{"title", "topic"},
		},
	}
}

func (t *FlashcardTool) Run(ctx context.Context, input Input) (*Output, error) {
	title, err := stringArg(input.Args, "title")
	if err != nil {
		return nil, err
	}
	topic, err := stringArg(input.Args, "topic")
	if err != nil {
		return nil, err
	}
	count := intArg(input.Args, "count", flashcardDefaultCount)
	if count < 1 {
		count = flashcardDefaultCount
	}
	if count > flashcardMaxCount {
		count = flashcardMaxCount
	}

	prompt := fmt.Sprintf(`Create exactly %d flashcards for a student studying %q.
Respond with JSON only, no prose: an array of objects with keys
"front" (the question or term), "back" (the answer or definition) and
"hint" (optional, may be empty).`, count, topic)

	reply, err := t.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("flashcard generation failed: %w", err)
	}

	var cards []entity.Flashcard
	if err := decodeModelJSON(reply, &cards); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("model produced no flashcards")
	}
	for i, card := range cards {
		if card.Front == "" || card.Back == "" {
			return nil, fmt.Errorf("card %d is missing front or back text", i+1)
		}
	}

	set := &entity.FlashcardSet{
		UserId:    input.UserId,
		ThreadId:  input.ThreadId,
		MessageId: input.MessageId,
		Title:     title,
		Topic:     topic,
		Cards:     cards,
	}

	return &Output{
		Kind:       entity.ArtifactKindFlashcardSet,
		Flashcards: set,
		Summary: map[string]any{
			"title":      title,
			"topic":      topic,
			"card_count": len(cards),
		},
	}, nil
}

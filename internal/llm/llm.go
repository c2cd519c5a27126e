package llm

import (
	"context"

	"meal-week-planner/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

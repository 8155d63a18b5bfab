package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/vspruyt/infogen/ai"
)

// ContentClassifier implements ai.ContentClassifier using OpenAI-compatible
// chat APIs.
type ContentClassifier struct {
	client    llms.Model
	maxTokens int
	model     string
	logger    *slog.Logger
}

var _ ai.ContentClassifier = (*ContentClassifier)(nil)

// newContentClassifier is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newContentClassifier(client llms.Model, config *ai.Config) *ContentClassifier {
	return &ContentClassifier{
		client:    client,
		maxTokens: config.MaxContentTokens,
		model:     config.ChatModel,
		logger:    slog.Default().With("component", "openai-classifier"),
	}
}

// Classify summarizes the page content with respect to the query, or marks it
// invalid when the model judges it irrelevant. Content is truncated to the
// configured token budget before being sent.
func (c *ContentClassifier) Classify(ctx context.Context, query, title, url, content string) (*ai.Classification, error) {
	content = truncateToTokens(content, c.maxTokens, c.model)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifierPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifierInput(query, title, url, content)),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, messages, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to generate content", "url", url, "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, errors.New("classifier: no choices returned from model")
	}

	summary := strings.TrimSpace(response.Choices[0].Content)
	if summary == "" || strings.Contains(summary, invalidContentMarker) {
		c.logger.Debug("content judged invalid", "url", url)
		return &ai.Classification{Valid: false}, nil
	}

	return &ai.Classification{Summary: summary, Valid: true}, nil
}

package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/vspruyt/infogen/ai"
)

// QueryReformulator implements ai.QueryReformulator using OpenAI-compatible
// chat APIs.
type QueryReformulator struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.QueryReformulator = (*QueryReformulator)(nil)

// newQueryReformulator is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newQueryReformulator(client llms.Model) *QueryReformulator {
	return &QueryReformulator{
		client: client,
		logger: slog.Default().With("component", "openai-reformulator"),
	}
}

// Reformulate rewrites the original question into a focused search query.
// A rejected prior reformulation is passed to the model so it tries a
// different angle instead of repeating itself.
func (r *QueryReformulator) Reformulate(ctx context.Context, original, rejected string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildReformulatorPrompt(time.Now())),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildReformulatorInput(original, rejected)),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		r.logger.Error("failed to generate content", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", errors.New("reformulator: no choices returned from model")
	}

	query := strings.TrimSpace(response.Choices[0].Content)
	query = strings.Trim(query, `"'`)
	if query == "" {
		return "", errors.New("reformulator: model returned empty query")
	}

	r.logger.Debug("reformulated query", "original", original, "enhanced", query)
	return query, nil
}

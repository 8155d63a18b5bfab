package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/vspruyt/infogen/ai"
	"github.com/vspruyt/infogen/core"
)

// PolicyReasoner implements ai.PolicyReasoner using OpenAI-compatible chat APIs.
type PolicyReasoner struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.PolicyReasoner = (*PolicyReasoner)(nil)

// policyResponse is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type policyResponse struct {
	TimeRange            string `json:"time_range"`
	CacheDurationMinutes int    `json:"cache_duration_minutes"`
}

// newPolicyReasoner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newPolicyReasoner(client llms.Model) *PolicyReasoner {
	return &PolicyReasoner{
		client: client,
		logger: slog.Default().With("component", "openai-policy"),
	}
}

// DecidePolicy asks the model how volatile the query's answer is and returns
// the normalized cache policy advice.
func (p *PolicyReasoner) DecidePolicy(ctx context.Context, query string) (*ai.PolicyAdvice, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildPolicyPrompt(time.Now())),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result policyResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			p.logger.Debug("no choices returned from model")
			continue
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			p.logger.Warn("error parsing policy response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		p.logger.Error("failed to parse policy response after retries", "err", lastErr)
		return nil, lastErr
	}

	advice := &ai.PolicyAdvice{
		TimeRange:            core.ParseTimeRange(result.TimeRange),
		CacheDurationMinutes: core.ClampCacheDuration(result.CacheDurationMinutes),
	}

	p.logger.Debug("decided cache policy",
		"query", query,
		"time_range", advice.TimeRange.String(),
		"cache_duration_minutes", advice.CacheDurationMinutes)
	return advice, nil
}

// stripCodeFences removes markdown code fences the model sometimes wraps
// around JSON output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

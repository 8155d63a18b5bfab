package openai

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// truncateToTokens trims text to at most maxTokens tokens, preferring to cut
// at a sentence boundary near the limit. Unknown models fall back to the
// cl100k_base encoding.
func truncateToTokens(text string, maxTokens int, model string) string {
	if maxTokens <= 0 {
		return text
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			// No encoder available; fall back to a rough character budget.
			limit := maxTokens * 4
			if len(text) <= limit {
				return text
			}
			return text[:limit]
		}
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}

	truncated := enc.Decode(tokens[:maxTokens])

	// Prefer ending on a sentence boundary when one exists in the tail.
	if idx := strings.LastIndexAny(truncated, ".!?"); idx > len(truncated)/2 {
		truncated = truncated[:idx+1]
	}
	return truncated
}

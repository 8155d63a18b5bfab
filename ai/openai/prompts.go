package openai

import (
	"fmt"
	"time"
)

// invalidContentMarker is the sentinel the classifier model returns when page
// content does not answer the query.
const invalidContentMarker = "INVALID_CONTENT"

// buildReformulatorPrompt builds the system prompt for query reformulation.
// The current date is included so the model can resolve relative time
// references like "latest" or "this year".
func buildReformulatorPrompt(now time.Time) string {
	return fmt.Sprintf(`You are a web search specialist. Today's date is %s.

Rewrite the user's question into a single, focused web search query that will
surface the most relevant results. Resolve relative time references against
today's date. Keep named entities intact. Do not answer the question.

Respond with the search query only: no quotes, no explanations, no markdown.`,
		now.Format("2006-01-02"))
}

// buildReformulatorInput builds the user message for query reformulation.
// When a prior reformulation produced insufficient results it is passed along
// so the model tries a different angle.
func buildReformulatorInput(original, rejected string) string {
	if rejected == "" {
		return original
	}
	return fmt.Sprintf(
		"Question: %s\n\nThe query %q was already tried and did not return enough useful results. Produce a different query.",
		original, rejected)
}

// buildPolicyPrompt builds the system prompt for cache policy reasoning.
func buildPolicyPrompt(now time.Time) string {
	return fmt.Sprintf(`You decide how long web search results for a query stay useful. Today's date is %s.

Judge how quickly the answer to the query changes:
  - live data (weather, stock prices, scores, breaking news): minutes to hours
  - current events and ongoing situations: hours to days
  - product info, schedules, evolving topics: days to weeks
  - stable facts (history, science, definitions, geography): months

Also pick a time_range restricting search to recent content when the query is
time-sensitive: one of "day", "week", "month", "year", or "none".

Respond with JSON only, in this exact shape:
{"time_range": "<day|week|month|year|none>", "cache_duration_minutes": <integer>}`,
		now.Format("2006-01-02"))
}

// buildClassifierPrompt builds the system prompt for content classification.
func buildClassifierPrompt() string {
	return fmt.Sprintf(`You judge whether extracted web page content is useful for answering a query.

If the content contains information relevant to the query, respond with a
concise markdown summary of that information only. Preserve concrete facts,
numbers, names, and dates.

If the content is empty, garbled, an error page, a paywall notice, or simply
unrelated to the query, respond with exactly %s and nothing else.`,
		invalidContentMarker)
}

// buildClassifierInput builds the user message for content classification.
func buildClassifierInput(query, title, url, content string) string {
	return fmt.Sprintf("Query: %s\n\nPage title: %s\nPage URL: %s\n\nPage content:\n%s",
		query, title, url, content)
}

// Copyright 2025 Vincent Spruyt
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"context"

	"github.com/vspruyt/infogen/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryReformulator rewrites a user question into a focused web search query.
// Implementations must be thread-safe for concurrent use.
type QueryReformulator interface {
	// Reformulate produces a search query for the original question.
	// rejected is the previous reformulation that yielded insufficient
	// results, or empty on the first pass; implementations should avoid
	// producing the rejected query again.
	Reformulate(ctx context.Context, original, rejected string) (string, error)
}

// PolicyAdvice is the reasoner's verdict on how to cache one query.
type PolicyAdvice struct {
	// TimeRange narrows the search to recent content when the query is
	// time-sensitive. TimeRangeNone means no recency constraint.
	TimeRange core.TimeRange

	// CacheDurationMinutes is how long search results for this query stay
	// useful, in [0, core.MaxCacheDurationMinutes].
	CacheDurationMinutes int
}

// PolicyReasoner judges the volatility of a query's answer.
// Implementations must be thread-safe for concurrent use.
type PolicyReasoner interface {
	// DecidePolicy returns cache policy advice for the query.
	DecidePolicy(ctx context.Context, query string) (*PolicyAdvice, error)
}

// Classification is the classifier's judgment of one extracted page.
type Classification struct {
	// Summary is a markdown digest of the information relevant to the
	// query. Empty when Valid is false.
	Summary string

	// Valid reports whether the page content actually answers the query.
	Valid bool
}

// ContentClassifier judges extracted page content against a query.
// Implementations must be thread-safe for concurrent use.
type ContentClassifier interface {
	// Classify summarizes the content with respect to the query, or marks
	// it invalid when the content is irrelevant, empty, or garbled.
	Classify(ctx context.Context, query, title, url, content string) (*Classification, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages its service instances, ensuring
// they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Reformulator returns the query reformulation service.
	Reformulator() QueryReformulator

	// PolicyReasoner returns the cache policy reasoning service.
	PolicyReasoner() PolicyReasoner

	// Classifier returns the content classification service.
	Classifier() ContentClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

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


package policy

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vspruyt/infogen/ai"
	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
)

// MinDecisionSimilarity is the embedding similarity (inclusive) at which a
// stored TTL decision is reused for a new query. It is deliberately higher
// than the result-cache threshold: borrowing a cache policy from a loosely
// related query risks serving stale data.
const MinDecisionSimilarity = 0.4

// minDecisionTTLMinutes keeps even short-lived decisions around for a day.
// The decision row outliving its result rows is fine: the policy for a query
// changes far more slowly than the results themselves.
const minDecisionTTLMinutes = 1440

// Engine resolves the cache policy for a query: nearby stored decisions are
// reused verbatim, otherwise the reasoner is consulted and its verdict
// persisted for future queries.
type Engine struct {
	repo     storage.PolicyRepository
	reasoner ai.PolicyReasoner
	logger   *slog.Logger
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.With("component", "policy-engine")
	}
}

// NewEngine creates a policy engine over the given repository and reasoner.
func NewEngine(repo storage.PolicyRepository, reasoner ai.PolicyReasoner, opts ...Option) *Engine {
	e := &Engine{
		repo:     repo,
		reasoner: reasoner,
		logger:   slog.Default().With("component", "policy-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide returns the TTL decision for the query.
// A stored decision within MinDecisionSimilarity of the query's embedding is
// returned as-is, without re-consulting the reasoner. On a miss the reasoner
// decides, and the normalized decision is stored before being returned.
func (e *Engine) Decide(ctx context.Context, query string, embedding []float32) (*core.TTLDecision, error) {
	if query == "" {
		return nil, core.ErrEmptyQuery
	}
	if len(embedding) == 0 {
		return nil, core.ErrEmptyEmbedding
	}

	cached, err := e.repo.NearestDecision(ctx, embedding, MinDecisionSimilarity)
	if err == nil {
		e.logger.Debug("reusing cached decision",
			"query", query,
			"decided_for", cached.Query,
			"time_range", cached.TimeRange.String(),
			"cache_duration_minutes", cached.CacheDurationMinutes)
		return cached, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	advice, err := e.reasoner.DecidePolicy(ctx, query)
	if err != nil {
		return nil, err
	}

	decision := &core.TTLDecision{
		Query:                query,
		Embedding:            embedding,
		TimeRange:            advice.TimeRange,
		CacheDurationMinutes: advice.CacheDurationMinutes,
		CreatedAt:            time.Now().UTC(),
		ExpiresAfterMinutes:  decisionTTL(advice.CacheDurationMinutes),
	}
	decision.Normalize()

	// A failed write only costs a future cache miss.
	if err := e.repo.PutDecision(ctx, decision); err != nil {
		e.logger.Warn("failed to store decision", "query", query, "err", err)
	}

	e.logger.Debug("new decision",
		"query", query,
		"time_range", decision.TimeRange.String(),
		"cache_duration_minutes", decision.CacheDurationMinutes)
	return decision, nil
}

// decisionTTL floors the decision row's own lifetime at a day.
func decisionTTL(cacheDurationMinutes int) int {
	if cacheDurationMinutes < minDecisionTTLMinutes {
		return minDecisionTTLMinutes
	}
	return cacheDurationMinutes
}

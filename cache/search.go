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


package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/policy"
	"github.com/vspruyt/infogen/storage"
	"github.com/vspruyt/infogen/websearch"
)

// MinResultSimilarity is the embedding similarity (inclusive) at which cached
// search entries are considered to answer a new query. It is looser than the
// policy threshold: reusing a related query's sources is cheap to verify,
// reusing its cache policy is not.
const MinResultSimilarity = 0.2

// SearchRequest describes one cache-aware search.
type SearchRequest struct {
	// Query is the user's original question; it keys the cache entry.
	Query string

	// EnhancedQuery is the reformulated search query sent to the provider.
	EnhancedQuery string

	// Embedding is the vector for EnhancedQuery.
	Embedding []float32

	// Depth selects the provider search mode.
	Depth core.SearchDepth

	// MaxResults caps how many results are requested or served.
	MaxResults int

	// MinResults is the smallest cached result set worth serving; fewer
	// hits fall through to the provider.
	MinResults int

	// ExcludeDomains are sources the caller has marked bad for this run.
	ExcludeDomains []string
}

// SearchResponse is the outcome of a cache-aware search.
type SearchResponse struct {
	// Decision is the cache policy applied to this query.
	Decision *core.TTLDecision

	// Results are candidate sources. Cache hits carry Score ==
	// core.ScoreFromCache and pre-joined Content; provider results carry
	// the provider's relevance score and no content yet.
	Results []core.SearchResult

	// FromCache reports whether Results were served from the cache.
	FromCache bool
}

// SearchCache is the similarity-indexed search result cache.
//
// A lookup resolves the query's cache policy first, then serves cached
// results when enough similar, non-expired entries exist. On a miss the
// provider is called, but nothing is written: results enter the cache only
// through StoreValidated, after the caller has verified their content.
type SearchCache struct {
	policy   *policy.Engine
	results  storage.ResultRepository
	content  storage.ContentRepository
	provider websearch.SearchProvider
	logger   *slog.Logger
}

// NewSearchCache creates a search cache.
func NewSearchCache(
	policyEngine *policy.Engine,
	results storage.ResultRepository,
	content storage.ContentRepository,
	provider websearch.SearchProvider,
) *SearchCache {
	return &SearchCache{
		policy:   policyEngine,
		results:  results,
		content:  content,
		provider: provider,
		logger:   slog.Default().With("component", "search-cache"),
	}
}

// Search resolves the query's cache policy and returns candidate sources,
// from cache when possible, from the provider otherwise.
func (c *SearchCache) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req.Query == "" || req.EnhancedQuery == "" {
		return nil, core.ErrEmptyQuery
	}
	if len(req.Embedding) == 0 {
		return nil, core.ErrEmptyEmbedding
	}

	decision, err := c.policy.Decide(ctx, req.EnhancedQuery, req.Embedding)
	if err != nil {
		return nil, err
	}

	cached, err := c.results.NearestResults(ctx, req.Embedding, storage.ResultFilter{
		SearchDepth:    req.Depth,
		TimeRange:      decision.TimeRange,
		ExcludeDomains: req.ExcludeDomains,
		MinSimilarity:  MinResultSimilarity,
		Limit:          req.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	if len(cached) >= req.MinResults && len(cached) > 0 {
		c.logger.Info("serving cached results", "query", req.Query, "results", len(cached))
		return &SearchResponse{
			Decision:  decision,
			Results:   c.joinContent(ctx, cached),
			FromCache: true,
		}, nil
	}

	exclusions := MergeExclusions(req.ExcludeDomains, DefaultDenyList())
	hits, err := c.provider.Search(ctx, &websearch.SearchRequest{
		Query:          req.EnhancedQuery,
		Depth:          req.Depth,
		MaxResults:     req.MaxResults,
		TimeRange:      decision.TimeRange,
		ExcludeDomains: exclusions,
	})
	if err != nil {
		return nil, err
	}

	results := make([]core.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, core.SearchResult{
			Title: hit.Title,
			URL:   hit.URL,
			Score: hit.Score,
		})
	}

	c.logger.Info("provider search", "query", req.EnhancedQuery, "results", len(results))
	return &SearchResponse{
		Decision:  decision,
		Results:   results,
		FromCache: false,
	}, nil
}

// StoreValidated writes a validated result set into the cache under the
// request's uniqueness key, with the decision's TTL and time range. Results
// should already carry their classifier summaries.
func (c *SearchCache) StoreValidated(ctx context.Context, req *SearchRequest, decision *core.TTLDecision, results []core.SearchResult) error {
	if len(results) == 0 {
		return nil
	}

	// Stored results keep title, URL, score, and summary; raw content lives
	// in the content cache, joined back in at read time.
	stored := make([]core.SearchResult, len(results))
	copy(stored, results)
	for i := range stored {
		stored[i].Content = ""
	}

	return c.results.PutEntry(ctx, &core.SearchEntry{
		Query:          req.Query,
		EnhancedQuery:  req.EnhancedQuery,
		SearchDepth:    req.Depth,
		TimeRange:      decision.TimeRange,
		MaxResults:     req.MaxResults,
		ExcludeDomains: req.ExcludeDomains,
		Embedding:      req.Embedding,
		Results:        stored,
		CreatedAt:      time.Now().UTC(),
		TTLMinutes:     decision.CacheDurationMinutes,
	})
}

// joinContent marks results as cache hits and attaches cached page content
// where the content cache still holds it.
func (c *SearchCache) joinContent(ctx context.Context, results []core.SearchResult) []core.SearchResult {
	out := make([]core.SearchResult, len(results))
	copy(out, results)
	for i := range out {
		out[i].Score = core.ScoreFromCache
		entry, err := c.content.GetContent(ctx, out[i].URL)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				c.logger.Warn("content lookup failed", "url", out[i].URL, "err", err)
			}
			continue
		}
		out[i].Content = entry.RawContent
	}
	return out
}

package storage

import (
	"context"

	"github.com/vspruyt/infogen/core"
)

// Repository provides operations shared across all cache repositories.
// Implementations must be thread-safe and support concurrent access;
// concurrent writes to the same key resolve last-write-wins.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// EmbeddingRepository caches text→vector mappings by exact text match.
// Embeddings of identical text never go stale, so entries carry no TTL.
type EmbeddingRepository interface {
	Repository

	// GetEmbedding returns the cached vector for the exact text.
	// Returns ErrNotFound when the text has never been embedded.
	GetEmbedding(ctx context.Context, text string) ([]float32, error)

	// PutEmbedding stores the vector for the text, overwriting any prior value.
	PutEmbedding(ctx context.Context, text string, vector []float32) error
}

// PolicyRepository persists TTL decisions keyed by embedding proximity.
type PolicyRepository interface {
	Repository

	// NearestDecision returns the non-expired decision most similar to the
	// vector, provided similarity >= minSimilarity (threshold inclusive).
	// Returns ErrNotFound when nothing qualifies.
	NearestDecision(ctx context.Context, vector []float32, minSimilarity float64) (*core.TTLDecision, error)

	// PutDecision upserts a decision keyed by its query.
	PutDecision(ctx context.Context, decision *core.TTLDecision) error
}

// ResultFilter constrains a similarity lookup over cached search entries.
// SearchDepth and TimeRange are equality filters; ExcludeDomains removes
// individual URLs from matching entries.
type ResultFilter struct {
	SearchDepth    core.SearchDepth
	TimeRange      core.TimeRange
	ExcludeDomains []string
	MinSimilarity  float64
	Limit          int
}

// ResultRepository persists cached search responses keyed by embedding
// proximity. The uniqueness key of an entry is (Query, SearchDepth,
// TimeRange); a conflicting write overwrites the previous entry.
type ResultRepository interface {
	Repository

	// PutEntry upserts a search entry under its uniqueness key.
	PutEntry(ctx context.Context, entry *core.SearchEntry) error

	// NearestResults collects results from non-expired entries matching the
	// filter, ordered by entry similarity descending with ties broken by the
	// larger MaxResults (prefer a cached superset), deduplicated by URL and
	// truncated to filter.Limit.
	NearestResults(ctx context.Context, vector []float32, filter ResultFilter) ([]core.SearchResult, error)
}

// ContentRepository caches extracted page text by exact URL.
// This is the only non-similarity cache in the engine: URLs are stable
// identifiers, so exact match is both correct and cheap.
type ContentRepository interface {
	Repository

	// GetContent returns the cached, non-expired content for the URL.
	// Returns ErrNotFound on a miss or an expired row.
	GetContent(ctx context.Context, url string) (*core.ContentEntry, error)

	// PutContent upserts the content entry for its URL.
	PutContent(ctx context.Context, entry *core.ContentEntry) error
}

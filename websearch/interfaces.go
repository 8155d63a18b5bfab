package websearch

import (
	"context"

	"github.com/vspruyt/infogen/core"
)

// SearchRequest describes one web search call.
type SearchRequest struct {
	// Query is the search query text.
	Query string

	// Depth selects the provider's shallow or deep search mode.
	Depth core.SearchDepth

	// MaxResults caps the number of returned results.
	MaxResults int

	// TimeRange restricts results to recent content. The zero value means
	// no restriction.
	TimeRange core.TimeRange

	// ExcludeDomains lists domains the provider must not return results from.
	ExcludeDomains []string
}

// Result is one search hit: a candidate source, not yet extracted.
type Result struct {
	Title string
	URL   string
	Score float64
}

// SearchProvider runs web searches.
// Implementations must be thread-safe for concurrent use.
type SearchProvider interface {
	// Search returns candidate sources for the request, best first.
	Search(ctx context.Context, req *SearchRequest) ([]Result, error)
}

// ExtractedPage is the raw text content pulled from one URL.
type ExtractedPage struct {
	URL        string
	RawContent string
}

// FailedExtraction records a URL the provider could not extract.
type FailedExtraction struct {
	URL    string
	Reason string
}

// ExtractResponse separates successful extractions from failures so callers
// can track bad sources. Failures are never cached.
type ExtractResponse struct {
	Results []ExtractedPage
	Failed  []FailedExtraction
}

// ExtractionProvider pulls raw page content from URLs.
// Implementations must be thread-safe for concurrent use.
type ExtractionProvider interface {
	// Extract fetches raw content for the URLs in one batch call.
	Extract(ctx context.Context, urls []string) (*ExtractResponse, error)
}

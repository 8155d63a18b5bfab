package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
	"github.com/vspruyt/infogen/websearch"
)

// ContentCache fronts the extraction provider with an exact-match URL cache.
//
// Extraction results are NOT written back by Extract: a page that extracts
// cleanly can still turn out to be irrelevant or garbled, and caching it
// would pin a bad source. Callers store content explicitly via Store once
// the page has passed validation. Failed extractions are never cached.
type ContentCache struct {
	repo     storage.ContentRepository
	provider websearch.ExtractionProvider
	logger   *slog.Logger
}

// NewContentCache creates a content cache over the repository and provider.
func NewContentCache(repo storage.ContentRepository, provider websearch.ExtractionProvider) *ContentCache {
	return &ContentCache{
		repo:     repo,
		provider: provider,
		logger:   slog.Default().With("component", "content-cache"),
	}
}

// Extract returns raw content for the URLs, serving from cache where
// possible and calling the provider once for the remainder.
func (c *ContentCache) Extract(ctx context.Context, urls []string) (*websearch.ExtractResponse, error) {
	resp := &websearch.ExtractResponse{}
	var missing []string

	for _, url := range urls {
		entry, err := c.repo.GetContent(ctx, url)
		if err == nil {
			resp.Results = append(resp.Results, websearch.ExtractedPage{
				URL:        entry.URL,
				RawContent: entry.RawContent,
			})
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		missing = append(missing, url)
	}

	c.logger.Debug("content lookup", "requested", len(urls), "cached", len(urls)-len(missing))

	if len(missing) == 0 {
		return resp, nil
	}

	fresh, err := c.provider.Extract(ctx, missing)
	if err != nil {
		return nil, err
	}
	resp.Results = append(resp.Results, fresh.Results...)
	resp.Failed = append(resp.Failed, fresh.Failed...)
	return resp, nil
}

// Store caches validated content for a URL with the given TTL.
func (c *ContentCache) Store(ctx context.Context, url, rawContent string, ttlMinutes int) error {
	return c.repo.PutContent(ctx, &core.ContentEntry{
		URL:        url,
		RawContent: rawContent,
		CreatedAt:  time.Now().UTC(),
		TTLMinutes: core.ClampCacheDuration(ttlMinutes),
	})
}

// Lookup returns the cached content for a URL, or storage.ErrNotFound.
func (c *ContentCache) Lookup(ctx context.Context, url string) (*core.ContentEntry, error) {
	return c.repo.GetContent(ctx, url)
}

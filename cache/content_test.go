package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
	"github.com/vspruyt/infogen/storage/badger"
	"github.com/vspruyt/infogen/websearch"
	wsmock "github.com/vspruyt/infogen/websearch/mock"
)

func newTestContentCache(t *testing.T) (*ContentCache, *wsmock.MockExtractionProvider) {
	t.Helper()
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	provider := wsmock.NewMockExtractionProvider()
	return NewContentCache(repos.Content, provider), provider
}

func TestContentCache(t *testing.T) {
	ctx := context.Background()

	t.Run("extraction does not populate cache", func(t *testing.T) {
		cc, provider := newTestContentCache(t)

		_, err := cc.Extract(ctx, []string{"https://example.com/page"})
		require.NoError(t, err)
		require.Equal(t, 1, provider.CallCount())

		// Unvalidated content must not be served from cache next time.
		_, err = cc.Extract(ctx, []string{"https://example.com/page"})
		require.NoError(t, err)
		assert.Equal(t, 2, provider.CallCount())

		_, err = cc.Lookup(ctx, "https://example.com/page")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("stored content served without provider call", func(t *testing.T) {
		cc, provider := newTestContentCache(t)

		require.NoError(t, cc.Store(ctx, "https://example.com/page", "validated text", 1440))

		resp, err := cc.Extract(ctx, []string{"https://example.com/page"})
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "validated text", resp.Results[0].RawContent)
		assert.Equal(t, 0, provider.CallCount())
	})

	t.Run("mixed batch only fetches misses", func(t *testing.T) {
		cc, provider := newTestContentCache(t)
		require.NoError(t, cc.Store(ctx, "https://cached.example.com", "cached text", 1440))

		provider.ExtractFunc = func(ctx context.Context, urls []string) (*websearch.ExtractResponse, error) {
			assert.Equal(t, []string{"https://fresh.example.com"}, urls)
			return &websearch.ExtractResponse{
				Results: []websearch.ExtractedPage{{URL: urls[0], RawContent: "fresh text"}},
			}, nil
		}

		resp, err := cc.Extract(ctx, []string{"https://cached.example.com", "https://fresh.example.com"})
		require.NoError(t, err)
		assert.Len(t, resp.Results, 2)
	})

	t.Run("failures surface and are never cached", func(t *testing.T) {
		cc, provider := newTestContentCache(t)
		provider.ExtractFunc = func(ctx context.Context, urls []string) (*websearch.ExtractResponse, error) {
			return &websearch.ExtractResponse{
				Failed: []websearch.FailedExtraction{{URL: urls[0], Reason: "fetch timeout"}},
			}, nil
		}

		resp, err := cc.Extract(ctx, []string{"https://broken.example.com"})
		require.NoError(t, err)
		require.Len(t, resp.Failed, 1)

		_, err = cc.Lookup(ctx, "https://broken.example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("store clamps TTL", func(t *testing.T) {
		cc, _ := newTestContentCache(t)
		require.NoError(t, cc.Store(ctx, "https://example.com/long", "text", 1<<30))

		entry, err := cc.Lookup(ctx, "https://example.com/long")
		require.NoError(t, err)
		assert.LessOrEqual(t, entry.TTLMinutes, core.MaxCacheDurationMinutes)
	})
}

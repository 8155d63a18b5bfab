package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/vspruyt/infogen/ai/mock"
	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/policy"
	"github.com/vspruyt/infogen/storage/badger"
	"github.com/vspruyt/infogen/websearch"
	wsmock "github.com/vspruyt/infogen/websearch/mock"
)

type searchCacheFixture struct {
	cache    *SearchCache
	content  *ContentCache
	provider *wsmock.MockSearchProvider
	reasoner *aimock.MockPolicyReasoner
}

func newSearchCacheFixture(t *testing.T) *searchCacheFixture {
	t.Helper()
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	reasoner := aimock.NewMockPolicyReasoner()
	provider := wsmock.NewMockSearchProvider()
	engine := policy.NewEngine(repos.Policies, reasoner)

	return &searchCacheFixture{
		cache:    NewSearchCache(engine, repos.Results, repos.Content, provider),
		content:  NewContentCache(repos.Content, wsmock.NewMockExtractionProvider()),
		provider: provider,
		reasoner: reasoner,
	}
}

func basicRequest(embedding []float32) *SearchRequest {
	return &SearchRequest{
		Query:         "history of the Eiffel Tower",
		EnhancedQuery: "Eiffel Tower history construction facts",
		Embedding:     embedding,
		Depth:         core.DepthBasic,
		MaxResults:    2,
		MinResults:    1,
	}
}

func TestSearchCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss calls provider and writes nothing", func(t *testing.T) {
		f := newSearchCacheFixture(t)

		resp, err := f.cache.Search(ctx, basicRequest([]float32{1, 0}))
		require.NoError(t, err)
		assert.False(t, resp.FromCache)
		assert.Len(t, resp.Results, 2)
		assert.Equal(t, 1, f.provider.CallCount())

		// Without validation the entry must not have been cached.
		resp2, err := f.cache.Search(ctx, basicRequest([]float32{1, 0}))
		require.NoError(t, err)
		assert.False(t, resp2.FromCache)
		assert.Equal(t, 2, f.provider.CallCount())
	})

	t.Run("validated results served from cache", func(t *testing.T) {
		f := newSearchCacheFixture(t)
		req := basicRequest([]float32{1, 0})

		resp, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		require.NoError(t, f.cache.StoreValidated(ctx, req, resp.Decision, resp.Results))

		cached, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		assert.True(t, cached.FromCache)
		assert.Len(t, cached.Results, 2)
		assert.Equal(t, 1, f.provider.CallCount())
		for _, r := range cached.Results {
			assert.Equal(t, core.ScoreFromCache, r.Score)
		}
	})

	t.Run("similar query within threshold hits cache", func(t *testing.T) {
		f := newSearchCacheFixture(t)
		req := basicRequest([]float32{1, 0})

		resp, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		require.NoError(t, f.cache.StoreValidated(ctx, req, resp.Decision, resp.Results))

		similar := basicRequest([]float32{1, 0.2})
		similar.Query = "when was the Eiffel Tower built"
		similar.EnhancedQuery = "Eiffel Tower construction date"

		cached, err := f.cache.Search(ctx, similar)
		require.NoError(t, err)
		assert.True(t, cached.FromCache)
		assert.Equal(t, 1, f.provider.CallCount())
	})

	t.Run("dissimilar query misses cache", func(t *testing.T) {
		f := newSearchCacheFixture(t)
		req := basicRequest([]float32{1, 0})

		resp, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		require.NoError(t, f.cache.StoreValidated(ctx, req, resp.Decision, resp.Results))

		other := basicRequest([]float32{-1, 0.1})
		other.Query = "best pasta recipes"
		other.EnhancedQuery = "easy pasta recipes"

		missed, err := f.cache.Search(ctx, other)
		require.NoError(t, err)
		assert.False(t, missed.FromCache)
	})

	t.Run("cache hit joins stored page content", func(t *testing.T) {
		f := newSearchCacheFixture(t)
		req := basicRequest([]float32{1, 0})

		resp, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		require.NoError(t, f.cache.StoreValidated(ctx, req, resp.Decision, resp.Results))
		require.NoError(t, f.content.Store(ctx, resp.Results[0].URL, "stored page text", 1440))

		cached, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		require.True(t, cached.FromCache)
		assert.Equal(t, "stored page text", cached.Results[0].Content)
		assert.Empty(t, cached.Results[1].Content)
	})

	t.Run("excluded domains filtered from cached results", func(t *testing.T) {
		f := newSearchCacheFixture(t)
		req := basicRequest([]float32{1, 0})

		resp, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		require.NoError(t, f.cache.StoreValidated(ctx, req, resp.Decision, resp.Results))

		blocked := basicRequest([]float32{1, 0})
		blocked.ExcludeDomains = []string{core.DomainOf(resp.Results[0].URL)}

		cached, err := f.cache.Search(ctx, blocked)
		require.NoError(t, err)
		require.True(t, cached.FromCache)
		for _, r := range cached.Results {
			assert.NotEqual(t, resp.Results[0].URL, r.URL)
		}
	})

	t.Run("provider call carries deny list and decision time range", func(t *testing.T) {
		f := newSearchCacheFixture(t)
		var captured *websearch.SearchRequest
		f.provider.SearchFunc = func(ctx context.Context, req *websearch.SearchRequest) ([]websearch.Result, error) {
			captured = req
			return nil, nil
		}

		req := basicRequest([]float32{1, 0})
		req.Query = "weather in Brussels"
		req.EnhancedQuery = "weather Brussels"
		req.ExcludeDomains = []string{"badnews.example.com"}
		req.MinResults = 1

		_, err := f.cache.Search(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Contains(t, captured.ExcludeDomains, "badnews.example.com")
		assert.Contains(t, captured.ExcludeDomains, "reddit.com")
		assert.Equal(t, core.TimeRangeDay, captured.TimeRange)
	})

	t.Run("rate limit error passes through", func(t *testing.T) {
		f := newSearchCacheFixture(t)
		f.provider.SearchFunc = func(ctx context.Context, req *websearch.SearchRequest) ([]websearch.Result, error) {
			return nil, websearch.ErrRateLimited
		}

		_, err := f.cache.Search(ctx, basicRequest([]float32{1, 0}))
		assert.ErrorIs(t, err, websearch.ErrRateLimited)
	})
}

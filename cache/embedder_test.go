package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/vspruyt/infogen/ai/mock"
	"github.com/vspruyt/infogen/storage/badger"
)

func newTestEmbedder(t *testing.T) (*CachingEmbedder, *aimock.MockEmbedder) {
	t.Helper()
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	inner := aimock.NewMockEmbedder()
	return NewCachingEmbedder(inner, repos.Embeddings), inner
}

func TestCachingEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("second call served from cache", func(t *testing.T) {
		embedder, inner := newTestEmbedder(t)

		first, err := embedder.EmbedText(ctx, "capital of France")
		require.NoError(t, err)
		require.Equal(t, 1, inner.CallCount())

		second, err := embedder.EmbedText(ctx, "capital of France")
		require.NoError(t, err)
		assert.Equal(t, 1, inner.CallCount())
		assert.Equal(t, first, second)
	})

	t.Run("different text embeds again", func(t *testing.T) {
		embedder, inner := newTestEmbedder(t)

		_, err := embedder.EmbedText(ctx, "one")
		require.NoError(t, err)
		_, err = embedder.EmbedText(ctx, "two")
		require.NoError(t, err)
		assert.Equal(t, 2, inner.CallCount())
	})

	t.Run("batch embeds only misses", func(t *testing.T) {
		embedder, inner := newTestEmbedder(t)

		cached, err := embedder.EmbedText(ctx, "cached text")
		require.NoError(t, err)
		inner.Reset()

		vectors, err := embedder.EmbedTexts(ctx, []string{"cached text", "fresh text"})
		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Equal(t, cached, vectors[0])
		assert.NotEmpty(t, vectors[1])
		// One batch call covering only the miss.
		assert.Equal(t, 1, inner.CallCount())
	})

	t.Run("fully cached batch makes no model call", func(t *testing.T) {
		embedder, inner := newTestEmbedder(t)

		_, err := embedder.EmbedText(ctx, "alpha")
		require.NoError(t, err)
		_, err = embedder.EmbedText(ctx, "beta")
		require.NoError(t, err)
		inner.Reset()

		_, err = embedder.EmbedTexts(ctx, []string{"alpha", "beta"})
		require.NoError(t, err)
		assert.Equal(t, 0, inner.CallCount())
	})
}

package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vspruyt/infogen/storage"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return repos
}

func TestEmbeddingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		repos := newTestRepos(t)
		vector := []float32{0.1, 0.2, 0.3}

		err := repos.Embeddings.PutEmbedding(ctx, "capital of France", vector)
		require.NoError(t, err)

		got, err := repos.Embeddings.GetEmbedding(ctx, "capital of France")
		require.NoError(t, err)
		assert.Equal(t, vector, got)
	})

	t.Run("exact match only", func(t *testing.T) {
		repos := newTestRepos(t)
		err := repos.Embeddings.PutEmbedding(ctx, "capital of France", []float32{0.1})
		require.NoError(t, err)

		_, err = repos.Embeddings.GetEmbedding(ctx, "Capital of France")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		repos := newTestRepos(t)
		_, err := repos.Embeddings.GetEmbedding(ctx, "never embedded")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("overwrite replaces vector", func(t *testing.T) {
		repos := newTestRepos(t)
		require.NoError(t, repos.Embeddings.PutEmbedding(ctx, "query", []float32{1, 0}))
		require.NoError(t, repos.Embeddings.PutEmbedding(ctx, "query", []float32{0, 1}))

		got, err := repos.Embeddings.GetEmbedding(ctx, "query")
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 1}, got)
	})

	t.Run("empty vector rejected", func(t *testing.T) {
		repos := newTestRepos(t)
		err := repos.Embeddings.PutEmbedding(ctx, "query", nil)
		assert.Error(t, err)
	})
}

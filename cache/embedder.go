package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vspruyt/infogen/ai"
	"github.com/vspruyt/infogen/storage"
)

// CachingEmbedder wraps an ai.Embedder with an exact-match persistent cache.
// Embedding the same text twice costs one model call.
type CachingEmbedder struct {
	inner  ai.Embedder
	repo   storage.EmbeddingRepository
	logger *slog.Logger
}

var _ ai.Embedder = (*CachingEmbedder)(nil)

// NewCachingEmbedder wraps inner with the embedding cache.
func NewCachingEmbedder(inner ai.Embedder, repo storage.EmbeddingRepository) *CachingEmbedder {
	return &CachingEmbedder{
		inner:  inner,
		repo:   repo,
		logger: slog.Default().With("component", "caching-embedder"),
	}
}

// EmbedText returns the cached vector for text, embedding and storing it on
// a miss.
func (e *CachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	cached, err := e.repo.GetEmbedding(ctx, text)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	vector, err := e.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.repo.PutEmbedding(ctx, text, vector); err != nil {
		e.logger.Warn("failed to cache embedding", "err", err)
	}
	return vector, nil
}

// EmbedTexts returns vectors for all texts, batching only the cache misses
// into a single model call.
func (e *CachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		cached, err := e.repo.GetEmbedding(ctx, text)
		if err == nil {
			vectors[i] = cached
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fresh, err := e.inner.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missing) {
		return nil, errors.New("embedder returned wrong number of vectors")
	}

	for i, vector := range fresh {
		vectors[missingIdx[i]] = vector
		if err := e.repo.PutEmbedding(ctx, missing[i], vector); err != nil {
			e.logger.Warn("failed to cache embedding", "err", err)
		}
	}
	return vectors, nil
}

package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("deterministic per text", func(t *testing.T) {
		m := NewMockEmbedder()
		a, err := m.EmbedText(ctx, "same text")
		require.NoError(t, err)
		b, err := m.EmbedText(ctx, "same text")
		require.NoError(t, err)
		assert.Equal(t, a, b)

		c, err := m.EmbedText(ctx, "other text")
		require.NoError(t, err)
		assert.NotEqual(t, a, c)
	})

	t.Run("vectors have unit length", func(t *testing.T) {
		m := NewMockEmbedder()
		vector, err := m.EmbedText(ctx, "normalize me")
		require.NoError(t, err)
		require.Len(t, vector, 384)

		var sumSquares float64
		for _, v := range vector {
			sumSquares += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-4)
	})

	t.Run("batch matches single", func(t *testing.T) {
		m := NewMockEmbedder()
		single, err := m.EmbedText(ctx, "batch item")
		require.NoError(t, err)

		batch, err := m.EmbedTexts(ctx, []string{"batch item"})
		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, single, batch[0])
	})
}

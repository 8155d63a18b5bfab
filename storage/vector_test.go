package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 0.3, 0.2}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		a := []float32{1, 2}
		b := []float32{-1, -2}
		assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-9)
	})

	t.Run("zero vector yields zero", func(t *testing.T) {
		a := []float32{0, 0}
		b := []float32{1, 1}
		assert.Equal(t, 0.0, CosineSimilarity(a, b))
	})

	t.Run("empty vectors yield zero", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	})

	t.Run("mismatched lengths compare over shorter prefix", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{1, 0, 5}
		assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-9)
	})
}

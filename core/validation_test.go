package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDecision(t *testing.T) {
	valid := func() *TTLDecision {
		return &TTLDecision{
			Query:                "weather in Paris",
			Embedding:            []float32{0.1, 0.2},
			TimeRange:            TimeRangeDay,
			CacheDurationMinutes: 60,
		}
	}

	t.Run("valid decision passes", func(t *testing.T) {
		assert.NoError(t, ValidateDecision(valid()))
	})

	t.Run("nil decision", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDecision(nil), ErrInvalidDecision)
	})

	t.Run("empty query", func(t *testing.T) {
		d := valid()
		d.Query = ""
		assert.ErrorIs(t, ValidateDecision(d), ErrEmptyQuery)
	})

	t.Run("empty embedding", func(t *testing.T) {
		d := valid()
		d.Embedding = nil
		assert.ErrorIs(t, ValidateDecision(d), ErrEmptyEmbedding)
	})

	t.Run("duration out of range", func(t *testing.T) {
		d := valid()
		d.CacheDurationMinutes = MaxCacheDurationMinutes + 1
		assert.ErrorIs(t, ValidateDecision(d), ErrInvalidDecision)

		d.CacheDurationMinutes = -1
		assert.ErrorIs(t, ValidateDecision(d), ErrInvalidDecision)
	})
}

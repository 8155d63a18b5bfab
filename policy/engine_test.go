package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vspruyt/infogen/ai"
	aimock "github.com/vspruyt/infogen/ai/mock"
	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage/badger"
)

func newTestEngine(t *testing.T) (*Engine, *aimock.MockPolicyReasoner) {
	t.Helper()
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	reasoner := aimock.NewMockPolicyReasoner()
	return NewEngine(repos.Policies, reasoner), reasoner
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("volatile query gets short TTL and day range", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		decision, err := engine.Decide(ctx, "weather in Brussels", []float32{1, 0})
		require.NoError(t, err)
		assert.Equal(t, core.TimeRangeDay, decision.TimeRange)
		assert.LessOrEqual(t, decision.CacheDurationMinutes, 1440)
	})

	t.Run("stable query gets maximum TTL and no range", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		decision, err := engine.Decide(ctx, "capital of France", []float32{1, 0})
		require.NoError(t, err)
		assert.Equal(t, core.TimeRangeNone, decision.TimeRange)
		assert.Equal(t, core.MaxCacheDurationMinutes, decision.CacheDurationMinutes)
	})

	t.Run("similar query reuses stored decision", func(t *testing.T) {
		engine, reasoner := newTestEngine(t)

		first, err := engine.Decide(ctx, "weather in Brussels", []float32{1, 0})
		require.NoError(t, err)
		require.Equal(t, 1, reasoner.CallCount())

		// Nearby embedding, different wording: reasoner must not run again.
		second, err := engine.Decide(ctx, "Brussels weather forecast", []float32{1, 0.05})
		require.NoError(t, err)
		assert.Equal(t, 1, reasoner.CallCount())
		assert.Equal(t, first.Query, second.Query)
		assert.Equal(t, first.CacheDurationMinutes, second.CacheDurationMinutes)
	})

	t.Run("dissimilar query consults reasoner again", func(t *testing.T) {
		engine, reasoner := newTestEngine(t)

		_, err := engine.Decide(ctx, "weather in Brussels", []float32{1, 0})
		require.NoError(t, err)

		_, err = engine.Decide(ctx, "capital of France", []float32{0, 1})
		require.NoError(t, err)
		assert.Equal(t, 2, reasoner.CallCount())
	})

	t.Run("reasoner output is normalized", func(t *testing.T) {
		engine, reasoner := newTestEngine(t)
		reasoner.DecidePolicyFunc = func(ctx context.Context, query string) (*ai.PolicyAdvice, error) {
			return &ai.PolicyAdvice{
				TimeRange:            core.TimeRange("fortnight"),
				CacheDurationMinutes: core.MaxCacheDurationMinutes + 999,
			}, nil
		}

		decision, err := engine.Decide(ctx, "anything", []float32{1, 0})
		require.NoError(t, err)
		assert.Equal(t, core.TimeRangeNone, decision.TimeRange)
		assert.Equal(t, core.MaxCacheDurationMinutes, decision.CacheDurationMinutes)
	})

	t.Run("reasoner error propagates", func(t *testing.T) {
		engine, reasoner := newTestEngine(t)
		boom := errors.New("model unavailable")
		reasoner.DecidePolicyFunc = func(ctx context.Context, query string) (*ai.PolicyAdvice, error) {
			return nil, boom
		}

		_, err := engine.Decide(ctx, "anything", []float32{1, 0})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("decision row outlives short cache durations", func(t *testing.T) {
		assert.Equal(t, minDecisionTTLMinutes, decisionTTL(60))
		assert.Equal(t, core.MaxCacheDurationMinutes, decisionTTL(core.MaxCacheDurationMinutes))
	})
}

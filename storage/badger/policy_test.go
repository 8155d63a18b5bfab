package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
)

func TestPolicyRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("exact vector hit", func(t *testing.T) {
		repos := newTestRepos(t)
		decision := &core.TTLDecision{
			Query:                "weather in Paris today",
			Embedding:            []float32{1, 0, 0},
			TimeRange:            core.TimeRangeDay,
			CacheDurationMinutes: 60,
			ExpiresAfterMinutes:  1440,
		}
		require.NoError(t, repos.Policies.PutDecision(ctx, decision))

		got, err := repos.Policies.NearestDecision(ctx, []float32{1, 0, 0}, 0.4)
		require.NoError(t, err)
		assert.Equal(t, "weather in Paris today", got.Query)
		assert.Equal(t, core.TimeRangeDay, got.TimeRange)
		assert.Equal(t, 60, got.CacheDurationMinutes)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		repos := newTestRepos(t)
		decision := &core.TTLDecision{
			Query:                "some query",
			Embedding:            []float32{1, 0},
			CacheDurationMinutes: 60,
			ExpiresAfterMinutes:  1440,
		}
		require.NoError(t, repos.Policies.PutDecision(ctx, decision))

		// cos(45°) between (1,0) and (1,1) is ~0.7071; query at exactly
		// that similarity must still qualify.
		got, err := repos.Policies.NearestDecision(ctx, []float32{1, 1}, 0.7071)
		require.NoError(t, err)
		assert.Equal(t, "some query", got.Query)
	})

	t.Run("below threshold misses", func(t *testing.T) {
		repos := newTestRepos(t)
		decision := &core.TTLDecision{
			Query:                "some query",
			Embedding:            []float32{1, 0},
			CacheDurationMinutes: 60,
			ExpiresAfterMinutes:  1440,
		}
		require.NoError(t, repos.Policies.PutDecision(ctx, decision))

		_, err := repos.Policies.NearestDecision(ctx, []float32{0, 1}, 0.4)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("most similar decision wins", func(t *testing.T) {
		repos := newTestRepos(t)
		far := &core.TTLDecision{
			Query:                "far query",
			Embedding:            []float32{1, 1},
			CacheDurationMinutes: 10,
			ExpiresAfterMinutes:  1440,
		}
		near := &core.TTLDecision{
			Query:                "near query",
			Embedding:            []float32{1, 0.1},
			CacheDurationMinutes: 20,
			ExpiresAfterMinutes:  1440,
		}
		require.NoError(t, repos.Policies.PutDecision(ctx, far))
		require.NoError(t, repos.Policies.PutDecision(ctx, near))

		got, err := repos.Policies.NearestDecision(ctx, []float32{1, 0}, 0.4)
		require.NoError(t, err)
		assert.Equal(t, "near query", got.Query)
	})

	t.Run("expired decision reads as miss", func(t *testing.T) {
		repos := newTestRepos(t)
		decision := &core.TTLDecision{
			Query:                "stale query",
			Embedding:            []float32{1, 0},
			CacheDurationMinutes: 60,
			CreatedAt:            time.Now().UTC().Add(-2 * time.Hour),
			ExpiresAfterMinutes:  60,
		}
		require.NoError(t, repos.Policies.PutDecision(ctx, decision))

		_, err := repos.Policies.NearestDecision(ctx, []float32{1, 0}, 0.4)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("upsert by query overwrites", func(t *testing.T) {
		repos := newTestRepos(t)
		first := &core.TTLDecision{
			Query:                "same query",
			Embedding:            []float32{1, 0},
			CacheDurationMinutes: 10,
			ExpiresAfterMinutes:  1440,
		}
		second := &core.TTLDecision{
			Query:                "same query",
			Embedding:            []float32{1, 0},
			CacheDurationMinutes: 99,
			ExpiresAfterMinutes:  1440,
		}
		require.NoError(t, repos.Policies.PutDecision(ctx, first))
		require.NoError(t, repos.Policies.PutDecision(ctx, second))

		got, err := repos.Policies.NearestDecision(ctx, []float32{1, 0}, 0.4)
		require.NoError(t, err)
		assert.Equal(t, 99, got.CacheDurationMinutes)
	})

	t.Run("invalid decision rejected", func(t *testing.T) {
		repos := newTestRepos(t)
		err := repos.Policies.PutDecision(ctx, &core.TTLDecision{Query: ""})
		assert.ErrorIs(t, err, core.ErrInvalidDecision)
	})
}

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidAt(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid before expiry", func(t *testing.T) {
		now := createdAt.Add(59 * time.Minute)
		assert.True(t, ValidAt(createdAt, 60, now))
	})

	t.Run("stale exactly at expiry instant", func(t *testing.T) {
		now := createdAt.Add(60 * time.Minute)
		assert.False(t, ValidAt(createdAt, 60, now))
	})

	t.Run("stale after expiry", func(t *testing.T) {
		now := createdAt.Add(61 * time.Minute)
		assert.False(t, ValidAt(createdAt, 60, now))
	})

	t.Run("zero TTL is never valid", func(t *testing.T) {
		assert.False(t, ValidAt(createdAt, 0, createdAt))
	})

	t.Run("negative TTL is never valid", func(t *testing.T) {
		assert.False(t, ValidAt(createdAt, -5, createdAt))
	})
}

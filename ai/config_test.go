package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	})

	t.Run("strips trailing slash before suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves canonical host untouched", func(t *testing.T) {
		cfg := NewConfig(WithHost("https://api.openai.com/v1"))
		cfg.Normalize()
		assert.Equal(t, "https://api.openai.com/v1", cfg.ChatHost)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, NewConfig().Validate())
	})

	t.Run("missing chat model rejected", func(t *testing.T) {
		cfg := NewConfig(WithChatModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty api key rejected", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive token budget rejected", func(t *testing.T) {
		cfg := NewConfig(WithMaxContentTokens(0))
		assert.Error(t, cfg.Validate())
	})
}

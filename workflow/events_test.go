package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStream(t *testing.T) {
	t.Run("delivers buffered events", func(t *testing.T) {
		stream := NewEventStream(4)
		stream.Emit(Event{Type: EventProgress, Phase: PhaseWebSearch, Message: "one"})
		stream.Emit(Event{Type: EventLog, Phase: PhaseResultCheck, Message: "two"})
		stream.Close()

		var messages []string
		for event := range stream.Events() {
			messages = append(messages, event.Message)
			assert.False(t, event.At.IsZero())
		}
		require.Equal(t, []string{"one", "two"}, messages)
		assert.Equal(t, int64(0), stream.Dropped())
	})

	t.Run("full buffer drops instead of blocking", func(t *testing.T) {
		stream := NewEventStream(1)
		stream.Emit(Event{Message: "kept"})
		stream.Emit(Event{Message: "dropped"})

		assert.Equal(t, int64(1), stream.Dropped())
	})

	t.Run("emit after close counts as dropped", func(t *testing.T) {
		stream := NewEventStream(4)
		stream.Close()
		stream.Emit(Event{Message: "late"})
		assert.Equal(t, int64(1), stream.Dropped())
	})

	t.Run("double close is safe", func(t *testing.T) {
		stream := NewEventStream(4)
		stream.Close()
		stream.Close()
	})
}

package workflow

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventType classifies stream events.
type EventType string

const (
	// EventLog carries diagnostic messages.
	EventLog EventType = "log"
	// EventProgress marks phase transitions in a run.
	EventProgress EventType = "progress"
	// EventResult carries the final outcome of a run.
	EventResult EventType = "result"
)

// Phase names the workflow stage an event belongs to.
type Phase string

const (
	PhaseQueryInterpretation Phase = "query_interpretation"
	PhaseWebSearch           Phase = "web_search"
	PhaseContentValidation   Phase = "content_validation"
	PhaseResultCheck         Phase = "result_check"
)

// Event is one observable step of a research run.
type Event struct {
	RunID   uuid.UUID
	Type    EventType
	Phase   Phase
	Message string
	Data    map[string]any
	At      time.Time
}

// EventStream is a buffered, non-blocking event channel. A slow consumer
// never stalls the workflow: events that don't fit the buffer are dropped
// and counted.
type EventStream struct {
	ch      chan Event
	dropped atomic.Int64
	closeMu sync.Mutex
	closed  bool
	logger  *slog.Logger
}

// NewEventStream creates a stream with the given buffer size.
func NewEventStream(buffer int) *EventStream {
	if buffer < 1 {
		buffer = 64
	}
	return &EventStream{
		ch:     make(chan Event, buffer),
		logger: slog.Default().With("component", "event-stream"),
	}
}

// Events returns the receive side of the stream.
func (s *EventStream) Events() <-chan Event {
	return s.ch
}

// Emit publishes an event without blocking. Events are dropped when the
// buffer is full or the stream is closed.
func (s *EventStream) Emit(event Event) {
	event.At = time.Now().UTC()

	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		s.dropped.Add(1)
		return
	}

	select {
	case s.ch <- event:
	default:
		s.dropped.Add(1)
		s.logger.Debug("event dropped", "type", event.Type, "phase", event.Phase)
	}
}

// Dropped returns how many events were discarded.
func (s *EventStream) Dropped() int64 {
	return s.dropped.Load()
}

// Close closes the stream. Emit calls after Close are counted as dropped.
func (s *EventStream) Close() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

package audit

import (
	"context"

	"github.com/datawarden/datawarden/internal/pkg/ringbuffer"
)

const defaultMemoryCapacity = 1024

// MemorySink retains the most recent audit events in a fixed-size buffer.
// It backs the recent-decisions endpoint and tests.
type MemorySink struct {
	buffer *ringbuffer.RingBuffer[Event]
}

func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}

	return &MemorySink{buffer: ringbuffer.New[Event](capacity)}
}

func (s *MemorySink) Record(ctx context.Context, event Event) {
	s.buffer.Push(event)
}

// Events returns the retained events, oldest first.
func (s *MemorySink) Events() []Event {
	return s.buffer.Values()
}

// Len returns the number of retained events.
func (s *MemorySink) Len() int {
	return s.buffer.Len()
}

// Clear drops all retained events.
func (s *MemorySink) Clear() {
	s.buffer.Clear()
}

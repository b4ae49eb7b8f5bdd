package ringbuffer

import (
	"sync"
)

// RingBuffer is a fixed-size circular buffer retaining the most recent values
// in insertion order. When full, the oldest value is overwritten.
type RingBuffer[T any] struct {
	mu       sync.RWMutex
	items    []T
	capacity int
	size     int
	head     int // points to the oldest item
	tail     int // points to the next insertion position
}

// New creates a new RingBuffer with the specified capacity.
func New[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		capacity = 1
	}

	return &RingBuffer[T]{
		items:    make([]T, capacity),
		capacity: capacity,
	}
}

// Push appends a value, evicting the oldest one when the buffer is full.
func (rb *RingBuffer[T]) Push(value T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.items[rb.tail] = value
	rb.tail = (rb.tail + 1) % rb.capacity

	if rb.size < rb.capacity {
		rb.size++
	} else {
		rb.head = (rb.head + 1) % rb.capacity
	}
}

// Values returns a snapshot of the retained values, oldest first.
func (rb *RingBuffer[T]) Values() []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	values := make([]T, 0, rb.size)
	for i := 0; i < rb.size; i++ {
		values = append(values, rb.items[(rb.head+i)%rb.capacity])
	}

	return values
}

// Len returns the number of retained values.
func (rb *RingBuffer[T]) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	return rb.size
}

// Clear removes all retained values.
func (rb *RingBuffer[T]) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.size = 0
	rb.head = 0
	rb.tail = 0
}

package dispatch

import (
	"sync"
)

// History is the append-only record of terminal results. It grows
// monotonically and is only ever emptied by an explicit operator Clear.
// It is the one piece of shared mutable state across concurrent dispatches,
// guarded by a single writer lock.
type History struct {
	mu      sync.RWMutex
	results []Result
}

func NewHistory() *History {
	return &History{}
}

// Append records a terminal result.
func (h *History) Append(result Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.results = append(h.results, result)
}

// All returns a snapshot of the recorded results in append order.
func (h *History) All() []Result {
	h.mu.RLock()
	defer h.mu.RUnlock()

	results := make([]Result, len(h.results))
	copy(results, h.results)

	return results
}

// Len returns the number of recorded results.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.results)
}

// Clear removes all recorded results. Operator action only.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.results = nil
}

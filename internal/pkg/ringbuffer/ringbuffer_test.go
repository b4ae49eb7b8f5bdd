package ringbuffer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushAndValues(t *testing.T) {
	rb := New[int](3)
	assert.Equal(t, 0, rb.Len())

	rb.Push(1)
	rb.Push(2)
	assert.Equal(t, []int{1, 2}, rb.Values())

	rb.Push(3)
	rb.Push(4) // evicts 1
	assert.Equal(t, 3, rb.Len())
	assert.Equal(t, []int{2, 3, 4}, rb.Values())
}

func TestClear(t *testing.T) {
	rb := New[string](2)
	rb.Push("a")
	rb.Push("b")

	rb.Clear()
	assert.Equal(t, 0, rb.Len())
	assert.Empty(t, rb.Values())

	rb.Push("c")
	assert.Equal(t, []string{"c"}, rb.Values())
}

func TestZeroCapacity(t *testing.T) {
	rb := New[int](0)
	rb.Push(1)
	rb.Push(2)
	assert.Equal(t, []int{2}, rb.Values())
}

func TestConcurrentPush(t *testing.T) {
	rb := New[int](128)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				rb.Push(j)
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 128, rb.Len())
}

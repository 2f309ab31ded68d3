package workers

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkerPool(t *testing.T) {
	tests := []struct {
		name            string
		numWorkers      int
		expectedWorkers int
	}{
		{"positive workers", 5, 5},
		{"zero workers defaults to 10", 0, 10},
		{"negative workers defaults to 10", -1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.numWorkers)
			assert.Equal(t, tt.expectedWorkers, pool.Size())
		})
	}
}

func TestMap_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	results := Map(pool, []int(nil), func(i int) int { return i })
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestMap_PreservesOrder(t *testing.T) {
	pool := NewWorkerPool(4)

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	results := Map(pool, items, func(i int) int { return i * i })

	assert.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, i*i, r)
	}
}

func TestMap_CallsFnOncePerItem(t *testing.T) {
	pool := NewWorkerPool(3)
	var calls int64

	items := []string{"a", "b", "c", "d", "e"}
	results := Map(pool, items, func(s string) string {
		atomic.AddInt64(&calls, 1)
		return s + s
	})

	assert.Equal(t, int64(len(items)), atomic.LoadInt64(&calls))
	assert.Equal(t, []string{"aa", "bb", "cc", "dd", "ee"}, results)
}

func TestMap_MoreWorkersThanItems(t *testing.T) {
	pool := NewWorkerPool(50)
	results := Map(pool, []float64{1.5}, func(f float64) float64 { return f * 2 })
	assert.Equal(t, []float64{3}, results)
}

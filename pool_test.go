package galois

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForEachChunkedVisitsEveryItemOnce(t *testing.T) {
	p := newPool(4)
	items := make([]int, 500)
	for i := range items {
		items[i] = i
	}

	var mu sync.Mutex
	seen := make(map[int]int)
	forEachChunked(p, items, 7, func(workerID int, item int) {
		mu.Lock()
		seen[item]++
		mu.Unlock()
	})

	require.Len(t, seen, len(items))
	for _, count := range seen {
		require.Equal(t, 1, count)
	}
}

func TestForEachChunkedEmptyInput(t *testing.T) {
	p := newPool(4)
	calls := 0
	forEachChunked(p, []int{}, 7, func(workerID int, item int) { calls++ })
	require.Equal(t, 0, calls)
}

package galois

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lessInt(a, b int) bool { return a < b }

func TestPQWindowWLOrdersByPriority(t *testing.T) {
	w := newPQWindowWL(lessInt)
	w.initFill([]int{5, 1, 3})
	w.push(2)
	w.push(4)

	var got []int
	for {
		v, ok := w.popMin()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestSortedRangeWindowWLOrdersByPriority(t *testing.T) {
	w := newSortedRangeWindowWL(lessInt)
	w.initFill([]int{5, 1, 3})
	w.push(2)
	w.push(4)

	var got []int
	for {
		v, ok := w.popMin()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestWindowWLPeekDoesNotConsume(t *testing.T) {
	w := newPQWindowWL(lessInt)
	w.push(7)
	first, ok := w.peekMin()
	require.True(t, ok)
	require.Equal(t, 7, first)
	require.Equal(t, 1, w.size())
}

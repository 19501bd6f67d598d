package galois

import (
	"sort"
	"sync"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// windowWL throttles how much of the total work is in flight at once,
// gated by Config.TargetCommitRatio. Two implementations exist because
// the original distinguishes push-producing loops (operators that
// spawn children, needing arbitrary mid-run insertion: a priority
// queue) from pure-consumer loops (a fixed initial range, needing only
// a sorted frontier). Select via Config.StaticRange.
type windowWL[C comparable] interface {
	initFill(items []C)
	push(c C)
	peekMin() (C, bool)
	popMin() (C, bool)
	size() int
}

func newWindowWL[C comparable](static bool, less func(a, b C) bool) windowWL[C] {
	if static {
		return newSortedRangeWindowWL(less)
	}
	return newPQWindowWL(less)
}

// pqWindowWL is the push-producing variant, backed by a binary heap
// keyed by the user Cmp.
type pqWindowWL[C comparable] struct {
	mu   sync.Mutex
	heap *binaryheap.Heap
	less func(a, b C) bool
}

func newPQWindowWL[C comparable](less func(a, b C) bool) *pqWindowWL[C] {
	cmp := func(a, b interface{}) int {
		x, y := a.(C), b.(C)
		switch {
		case less(x, y):
			return -1
		case less(y, x):
			return 1
		default:
			return 0
		}
	}
	return &pqWindowWL[C]{heap: binaryheap.NewWith(cmp), less: less}
}

func (w *pqWindowWL[C]) initFill(items []C) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range items {
		w.heap.Push(it)
	}
}

func (w *pqWindowWL[C]) push(c C) {
	w.mu.Lock()
	w.heap.Push(c)
	w.mu.Unlock()
}

func (w *pqWindowWL[C]) peekMin() (C, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.heap.Peek()
	if !ok {
		var zero C
		return zero, false
	}
	return v.(C), true
}

func (w *pqWindowWL[C]) popMin() (C, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.heap.Pop()
	if !ok {
		var zero C
		return zero, false
	}
	return v.(C), true
}

func (w *pqWindowWL[C]) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.heap.Size()
}

// sortedRangeWindowWL is the pure-consumer variant: a sorted slice
// with inserts kept in order, cheaper than a heap when the caller
// never pushes children (Config.StaticRange).
type sortedRangeWindowWL[C comparable] struct {
	mu    sync.Mutex
	less  func(a, b C) bool
	items []C
}

func newSortedRangeWindowWL[C comparable](less func(a, b C) bool) *sortedRangeWindowWL[C] {
	return &sortedRangeWindowWL[C]{less: less}
}

func (w *sortedRangeWindowWL[C]) initFill(items []C) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, items...)
	sort.Slice(w.items, func(i, j int) bool { return w.less(w.items[i], w.items[j]) })
}

func (w *sortedRangeWindowWL[C]) push(c C) {
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := sort.Search(len(w.items), func(i int) bool { return !w.less(w.items[i], c) })
	w.items = append(w.items, c)
	copy(w.items[idx+1:], w.items[idx:])
	w.items[idx] = c
}

func (w *sortedRangeWindowWL[C]) peekMin() (C, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.items) == 0 {
		var zero C
		return zero, false
	}
	return w.items[0], true
}

func (w *sortedRangeWindowWL[C]) popMin() (C, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.items) == 0 {
		var zero C
		return zero, false
	}
	v := w.items[0]
	w.items = w.items[1:]
	return v, true
}

func (w *sortedRangeWindowWL[C]) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

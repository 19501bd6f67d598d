package galois

import "sync"

// ctxtWL is a concurrent, mutex-guarded append-only collector used for
// cross-goroutine fan-in during a round's parallel passes (abort
// candidates, commit-ready contexts). C is always a context pointer
// type in practice, so the zero value doubles as "absent".
type ctxtWL[C comparable] struct {
	mu    sync.Mutex
	items []C
}

func (w *ctxtWL[C]) push(c C) {
	w.mu.Lock()
	w.items = append(w.items, c)
	w.mu.Unlock()
}

// drain empties the collector and returns what it held.
func (w *ctxtWL[C]) drain() []C {
	w.mu.Lock()
	items := w.items
	w.items = nil
	w.mu.Unlock()
	return items
}

// snapshot returns a copy without clearing the collector.
func (w *ctxtWL[C]) snapshot() []C {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]C, len(w.items))
	copy(out, w.items)
	return out
}

func (w *ctxtWL[C]) empty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items) == 0
}

// minPendingSlot is one worker's contribution to the GVT computation
// (§ getMinPending): the lowest-priority pending context it has pushed
// this round, updated with a short per-slot lock rather than a global
// one so workers never contend with each other.
type minPendingSlot[C comparable] struct {
	mu  sync.Mutex
	val C
	set bool
}

func (s *minPendingSlot[C]) reset() {
	s.mu.Lock()
	var zero C
	s.val = zero
	s.set = false
	s.mu.Unlock()
}

func (s *minPendingSlot[C]) update(c C, less func(a, b C) bool) {
	s.mu.Lock()
	if !s.set || less(c, s.val) {
		s.val = c
		s.set = true
	}
	s.mu.Unlock()
}

func (s *minPendingSlot[C]) get() (C, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.set
}

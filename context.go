package galois

import "sync/atomic"

// specContext is the shared base embedded by optimContext and
// pessimContext: the active work item, the atomic lifecycle state (I1:
// transitioned only via CAS), the source flag written during
// neighborhood acquisition, the round this task last executed in (used
// by ParaMeter step stats), and the accumulated user effects.
type specContext[V any] struct {
	active     V
	state      atomic.Int32
	source     atomic.Bool
	execRound  int
	userHandle UserContext[V]
}

func newSpecContext[V any](active V) *specContext[V] {
	c := &specContext[V]{active: active}
	c.state.Store(int32(stateUnscheduled))
	c.source.Store(true)
	return c
}

func (c *specContext[V]) hasState(s contextState) bool {
	return contextState(c.state.Load()) == s
}

func (c *specContext[V]) getState() contextState {
	return contextState(c.state.Load())
}

func (c *specContext[V]) setState(s contextState) {
	c.state.Store(int32(s))
}

func (c *specContext[V]) casState(old, new contextState) bool {
	return c.state.CompareAndSwap(int32(old), int32(new))
}

// disableSrc marks this context as no longer a candidate to run its
// operator this round: either a higher-priority contender claimed a
// shared object it also wants, or the operator itself signalled abort.
func (c *specContext[V]) disableSrc() {
	c.source.Store(false)
}

func (c *specContext[V]) isSrc() bool {
	return c.source.Load()
}

func (c *specContext[V]) markExecRound(r int) {
	c.execRound = r
}

// GetExecRound returns the round this task last ran its operator in.
// Only meaningful when ParaMeter recording is enabled.
func (c *specContext[V]) GetExecRound() int {
	return c.execRound
}

// schedule resets the per-attempt fields shared by both modes, at the
// start of expandNhood for this task.
func (c *specContext[V]) schedule() {
	c.source.Store(true)
	c.setState(stateScheduled)
	c.userHandle.reset()
}

// Active implements Handle.
func (c *specContext[V]) Active() V { return c.active }

// Push implements Handle.
func (c *specContext[V]) Push(child V) { c.userHandle.Push(child) }

// SignalAbort implements Handle.
func (c *specContext[V]) SignalAbort() { c.disableSrc() }

// RecordUndo implements Handle.
func (c *specContext[V]) RecordUndo(fn func()) { c.userHandle.RecordUndo(fn) }

// RecordCommit implements Handle.
func (c *specContext[V]) RecordCommit(fn func()) { c.userHandle.RecordCommit(fn) }

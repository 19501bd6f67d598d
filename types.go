package galois

// Cmp is a strict weak ordering on work items: Cmp(a, b) is true iff a
// strictly precedes b in user priority (lower = higher priority /
// earlier, per spec).
type Cmp[V any] func(a, b V) bool

// Handle is the per-task handle passed to NhFunc, ExFunc, and OpFunc.
// It is the userCtx: nhFunc must call Acquire for every shared object
// the operator will touch; opFunc may Push children and record
// undo/commit actions.
type Handle[V any, L comparable] interface {
	// Active returns the task's work item value.
	Active() V

	// Acquire claims neighborhood item l on behalf of this task. Must
	// be called from within NhFunc, once per shared object touched by
	// the operator. Idempotent: acquiring the same l twice is a no-op.
	Acquire(l L)

	// Push enqueues a child work item. Under OPTIM the child is
	// scheduled as soon as this task's operator succeeds, before this
	// task commits (and is not re-added if this task later aborts);
	// under PESSIM it is scheduled when this task commits.
	Push(child V)

	// SignalAbort marks this task as having lost its claim to proceed;
	// combined with a non-nil OpFunc error, either is sufficient to
	// cause the task to abort and retry.
	SignalAbort()

	// RecordUndo appends an undo action, replayed in reverse order if
	// this task aborts.
	RecordUndo(fn func())

	// RecordCommit appends a commit action, replayed in order once
	// this task is retired.
	RecordCommit(fn func())
}

// NhFunc expands the neighborhood of item: it must call h.Acquire for
// every shared object the operator will touch. Must be idempotent; the
// executor may call it again after an abort and reschedule.
type NhFunc[V any, L comparable] func(item V, h Handle[V, L])

// ExFunc is an optional read-only phase run after conflict resolution,
// before the operator. A nil ExFunc skips the phase entirely.
type ExFunc[V any, L comparable] func(item V, h Handle[V, L])

// OpFunc is the operator. A non-nil return requests that the task be
// aborted and retried; side effects on shared objects must be captured
// via h.RecordCommit/h.RecordUndo.
type OpFunc[V any, L comparable] func(item V, h Handle[V, L]) error

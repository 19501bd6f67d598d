package galois

// contextState is the lifecycle state of a task context, transitioned
// only via atomic compare-and-swap (I1).
type contextState int32

const (
	stateUnscheduled contextState = iota
	stateScheduled
	stateReadyToCommit
	stateAbortHelp
	stateCommitting
	stateCommitDone
	stateReadyToAbort
	stateAborting
	stateAbortDone
	stateAbortedChild
	stateReclaim
)

var contextStateNames = [...]string{
	stateUnscheduled:   "UNSCHEDULED",
	stateScheduled:     "SCHEDULED",
	stateReadyToCommit: "READY_TO_COMMIT",
	stateAbortHelp:     "ABORT_HELP",
	stateCommitting:    "COMMITTING",
	stateCommitDone:    "COMMIT_DONE",
	stateReadyToAbort:  "READY_TO_ABORT",
	stateAborting:      "ABORTING",
	stateAbortDone:     "ABORT_DONE",
	stateAbortedChild:  "ABORTED_CHILD",
	stateReclaim:       "RECLAIM",
}

func (s contextState) String() string {
	if int(s) < 0 || int(s) >= len(contextStateNames) {
		return "UNKNOWN"
	}
	return contextStateNames[s]
}

// SpecMode selects the conflict-resolution discipline of the executor.
type SpecMode int

const (
	// OPTIM lets tasks run freely; conflicts are found after the fact
	// and trigger cascaded aborts.
	OPTIM SpecMode = iota
	// PESSIM disables a lower-priority contender the instant a
	// neighborhood object is acquired, rolling back a readied loser
	// immediately.
	PESSIM
)

func (m SpecMode) String() string {
	switch m {
	case OPTIM:
		return "OPTIM"
	case PESSIM:
		return "PESSIM"
	default:
		return "UNKNOWN"
	}
}

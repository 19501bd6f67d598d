package galois

import "github.com/emirpasic/gods/trees/binaryheap"

func (e *optimExecutor[V, L]) executeSources(sources []*optimContext[V, L]) {
	if e.exFunc == nil {
		return
	}
	forEachChunked(e.pool, sources, e.cfg.ChunkExec, func(_ int, c *optimContext[V, L]) {
		e.exFunc(c.Active(), c)
	})
}

// applyOperator runs the operator on every source, promoting it to
// READY_TO_COMMIT and recording its children on success, or rolling it
// back and re-queuing it on failure. A task "succeeds" only if the operator
// returned no error AND the task is still a source — an Acquire deep
// inside the operator call may have lost a priority race and disabled
// it, in which case the operator's own success is irrelevant.
func (e *optimExecutor[V, L]) applyOperator(sources []*optimContext[V, L]) {
	minWinWL, hasMin := e.getMinWinWL()
	forEachChunked(e.pool, sources, e.cfg.ChunkOp, func(workerID int, c *optimContext[V, L]) {
		err := e.opFunc(c.Active(), c)
		if err != nil || !c.isSrc() {
			if c.casState(stateScheduled, stateAborting) {
				// c never reached addToHistory, so there is no sharer
				// entry to remove: roll back and re-queue it directly.
				c.userHandle.rollback()
				c.setState(stateAbortDone)
				e.pushAbortFrom(workerID, c)
			}
			return
		}

		for _, child := range c.userHandle.PushBuffer() {
			childCtxt := e.pushCommit(child, workerID, minWinWL, hasMin)
			c.addChild(childCtxt)
		}
		if !c.casState(stateScheduled, stateReadyToCommit) {
			e.cfg.Logger.Fatalf("galois: CAS SCHEDULED->READY_TO_COMMIT failed unexpectedly")
			return
		}
		c.addToHistory()
		e.commitQ.push(c)
		e.roundCommits++
		if e.cfg.EnableParaMeter {
			c.markExecRound(e.rounds)
		}
	})
}

// performCommits retires every READY_TO_COMMIT task below the global
// virtual time that also sits at the head of every neighborhood item
// it shares, then cascades to whatever commits its retirement exposes.
func (e *optimExecutor[V, L]) performCommits() {
	gvt, hasGVT := e.getMinPending()

	var collected ctxtWL[*optimContext[V, L]]
	committed := e.commitQ.snapshot()
	forEachChunked(e.pool, committed, e.cfg.ChunkCommit, func(_ int, c *optimContext[V, L]) {
		if c.hasState(stateReadyToCommit) && (!hasGVT || e.ctxtCmp(c, gvt)) && c.isCommitSrc() {
			collected.push(c)
		}
	})

	queue := collected.drain()
	for i := 0; i < len(queue); i++ {
		c := queue[i]
		if !c.casState(stateReadyToCommit, stateCommitting) {
			continue
		}
		if err := c.doCommit(); err != nil {
			e.cfg.Logger.Fatalf("%v", err)
			return
		}
		e.totalRetires++
		if r := c.GetExecRound() - 1; e.cfg.EnableParaMeter && r >= 0 && r < len(e.stepStats) {
			e.stepStats[r].Parallelism++
		}
		c.findCommitSrc(gvt, hasGVT, func(x *optimContext[V, L]) { queue = append(queue, x) })
	}
}

// reclaimMemory transitions every fully-settled context (aborted as
// somebody's child, or committed) to RECLAIM, keeping anything still
// READY_TO_COMMIT (blocked on GVT) in the queue for next round.
func (e *optimExecutor[V, L]) reclaimMemory() {
	remaining := e.commitQ.drain()
	for _, c := range remaining {
		if c.hasState(stateReadyToCommit) {
			e.commitQ.push(c)
			continue
		}
		if !c.casState(stateAbortedChild, stateReclaim) {
			c.casState(stateCommitDone, stateReclaim)
		}
	}
}

// pessimExecutor's commit pass: drain commitQ into a priority queue,
// then retire in ascending priority order while the head still
// satisfies the GVT bound, exactly as the original drains its
// per-thread reverse-sorted queues through a meta-priority-queue —
// adapted here to a single shared heap rather than one queue per
// worker, since performCommits already runs after all workers have
// finished applyOperator for the round.
func (e *pessimExecutor[V, L]) performCommits() {
	items := e.commitQ.drain()

	heapCmp := func(a, b interface{}) int {
		x, y := a.(*pessimContext[V, L]), b.(*pessimContext[V, L])
		switch {
		case e.ctxtCmp(x, y):
			return -1
		case e.ctxtCmp(y, x):
			return 1
		default:
			return 0
		}
	}
	h := binaryheap.NewWith(heapCmp)
	for _, c := range items {
		if c.hasState(stateReadyToCommit) {
			h.Push(c)
		}
	}

	minWinWL, hasMin := e.getMinWinWL()
	minPending, hasPending := e.getMinPending()

	for {
		v, ok := h.Peek()
		if !ok {
			break
		}
		c := v.(*pessimContext[V, L])
		if hasPending && e.ctxtCmp(minPending, c) {
			break
		}
		h.Pop()

		if !c.casState(stateReadyToCommit, stateCommitting) {
			continue
		}
		for _, child := range c.userHandle.PushBuffer() {
			childCtxt := e.pushCommit(child, c.owner, minWinWL, hasMin)
			if !hasPending || e.ctxtCmp(childCtxt, minPending) {
				minPending, hasPending = childCtxt, true
			}
		}
		c.doCommit()
		c.setState(stateReclaim)
		e.totalRetires++
		if r := c.GetExecRound() - 1; e.cfg.EnableParaMeter && r >= 0 && r < len(e.stepStats) {
			e.stepStats[r].Parallelism++
		}
	}

	for h.Size() > 0 {
		v, _ := h.Pop()
		e.commitQ.push(v.(*pessimContext[V, L]))
	}
}

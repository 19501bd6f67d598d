package galois

// serviceAborts runs the OPTIM abort pass in three steps: mark every
// current-round source that loses a priority scan, drain the
// resulting cascade (which can grow as markForAbortRecursive discovers
// further victims), then partition the round into fresh sources,
// already-dead children, and everything else (quick-aborted on the
// spot since it never got far enough to need the full cascade).
func (e *optimExecutor[V, L]) serviceAborts() []*optimContext[V, L] {
	var collected ctxtWL[*optimContext[V, L]]
	forEachChunked(e.pool, e.currWL, e.cfg.ChunkAbort, func(_ int, c *optimContext[V, L]) {
		if c.isSrc() && c.findAborts(collected.push) {
			c.disableSrc()
		}
	})

	abortWL := collected.drain()
	for i := 0; i < len(abortWL); i++ {
		c := abortWL[i]
		if !c.casState(stateReadyToAbort, stateAborting) {
			continue
		}
		if err := c.doAbort(func(x *optimContext[V, L]) { e.pushAbortFrom(0, x) }); err != nil {
			e.cfg.Logger.Fatalf("%v", err)
			return nil
		}
		c.findAbortSrc(func(x *optimContext[V, L]) { abortWL = append(abortWL, x) })
	}

	sources := make([]*optimContext[V, L], 0, len(e.currWL))
	for _, c := range e.currWL {
		switch {
		case c.hasState(stateAbortedChild):
			e.commitQ.push(c)
		case c.isSrc():
			sources = append(sources, c)
		default:
			e.quickAbort(c)
		}
		c.resetMarks()
	}
	return sources
}

// serviceAborts (PESSIM) drains the abort worklist fed by
// priorityAcquire when a readied holder is displaced.
func (e *pessimExecutor[V, L]) serviceAborts() {
	items := e.abortWL.drain()
	forEachChunked(e.pool, items, e.cfg.ChunkAbort, func(workerID int, c *pessimContext[V, L]) {
		if c.casState(stateAbortHelp, stateAborting) {
			c.doAbort(func(x *pessimContext[V, L]) { e.pushAbortFrom(workerID, x) })
		}
	})
}

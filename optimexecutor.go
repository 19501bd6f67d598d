package galois

type optimExecutor[V any, L comparable] struct {
	*execBase[*optimContext[V, L]]

	cmp    Cmp[V]
	nhFunc NhFunc[V, L]
	exFunc ExFunc[V, L]
	opFunc OpFunc[V, L]

	nhmgr *nhoodMgr[V, L]
}

func newOptimExecutor[V any, L comparable](cmp Cmp[V], nhFunc NhFunc[V, L], exFunc ExFunc[V, L], opFunc OpFunc[V, L], cfg *Config) *optimExecutor[V, L] {
	ctxtCmp := func(a, b *optimContext[V, L]) bool { return cmp(a.active, b.active) }
	e := &optimExecutor[V, L]{
		cmp:    cmp,
		nhFunc: nhFunc,
		exFunc: exFunc,
		opFunc: opFunc,
		nhmgr:  newNhoodMgr[V, L](ctxtCmp),
	}
	e.execBase = newExecBase[*optimContext[V, L]](cfg, ctxtCmp, newWindowWL(cfg.StaticRange, ctxtCmp))
	return e
}

func (e *optimExecutor[V, L]) pushInitial(items []V) {
	ctxts := make([]*optimContext[V, L], len(items))
	for i, it := range items {
		ctxts[i] = newOptimContext(it, e)
	}
	e.totalTasks = len(ctxts)

	if e.cfg.TargetCommitRatio > 0 {
		e.winWL.initFill(ctxts)
		target := int(float64(len(ctxts)) * e.cfg.TargetCommitRatio)
		if target < 1 {
			target = 1
		}
		e.windowTarget = target
		return
	}
	for _, c := range ctxts {
		e.nextWL.push(c)
	}
}

// pushCommit builds a context for a child item pushed by a committing
// task: admitted straight into the next round if it's more urgent
// than the window worklist's current head, otherwise parked there.
func (e *optimExecutor[V, L]) pushCommit(v V, workerID int, minWinWL *optimContext[V, L], hasMin bool) *optimContext[V, L] {
	c := newOptimContext(v, e)
	e.updateCurrMinPending(workerID, c)
	if e.cfg.TargetCommitRatio == 0 || !hasMin || e.ctxtCmp(c, minWinWL) {
		e.nextWL.push(c)
	} else {
		e.winWL.push(c)
	}
	return c
}

func (e *optimExecutor[V, L]) pushAbortFrom(workerID int, c *optimContext[V, L]) {
	c.setState(stateUnscheduled)
	e.updateCurrMinPending(workerID, c)
	e.nextWL.push(c)
}

func (e *optimExecutor[V, L]) quickAbort(c *optimContext[V, L]) {
	if c.casState(stateScheduled, stateAbortDone) {
		e.pushAbortFrom(0, c)
	}
}

// execute runs the round pipeline until the worklist is exhausted or
// Config.MaxIterations is reached, then returns the accumulated Stats.
func (e *optimExecutor[V, L]) execute() *Stats {
	for {
		e.beginRound()
		if e.doneRounds() {
			break
		}
		e.expandNhood()
		sources := e.serviceAborts()
		e.executeSources(sources)
		e.applyOperator(sources)
		e.performCommits()
		e.reclaimMemory()
		if e.exhausted() {
			break
		}
	}
	return e.buildStats()
}

func (e *optimExecutor[V, L]) expandNhood() {
	forEachChunked(e.pool, e.currWL, e.cfg.ChunkExpand, func(_ int, c *optimContext[V, L]) {
		if c.hasState(stateAbortedChild) {
			return
		}
		c.schedule()
		e.nhFunc(c.Active(), c)
	})
}

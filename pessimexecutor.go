package galois

type pessimExecutor[V any, L comparable] struct {
	*execBase[*pessimContext[V, L]]

	cmp    Cmp[V]
	nhFunc NhFunc[V, L]
	exFunc ExFunc[V, L]
	opFunc OpFunc[V, L]

	owners  *ownerMgr[V, L]
	abortWL ctxtWL[*pessimContext[V, L]]
}

func newPessimExecutor[V any, L comparable](cmp Cmp[V], nhFunc NhFunc[V, L], exFunc ExFunc[V, L], opFunc OpFunc[V, L], cfg *Config) *pessimExecutor[V, L] {
	ctxtCmp := func(a, b *pessimContext[V, L]) bool { return cmp(a.active, b.active) }
	e := &pessimExecutor[V, L]{
		cmp:    cmp,
		nhFunc: nhFunc,
		exFunc: exFunc,
		opFunc: opFunc,
		owners: newOwnerMgr[V, L](),
	}
	e.execBase = newExecBase[*pessimContext[V, L]](cfg, ctxtCmp, newWindowWL(cfg.StaticRange, ctxtCmp))
	return e
}

func (e *pessimExecutor[V, L]) markForAbort(c *pessimContext[V, L]) {
	e.abortWL.push(c)
}

func (e *pessimExecutor[V, L]) pushInitial(items []V) {
	ctxts := make([]*pessimContext[V, L], len(items))
	for i, it := range items {
		ctxts[i] = newPessimContext(it, e)
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

func (e *pessimExecutor[V, L]) pushCommit(v V, workerID int, minWinWL *pessimContext[V, L], hasMin bool) *pessimContext[V, L] {
	c := newPessimContext(v, e)
	e.updateCurrMinPending(workerID, c)
	if e.cfg.TargetCommitRatio == 0 || !hasMin || e.ctxtCmp(c, minWinWL) {
		e.nextWL.push(c)
	} else {
		e.winWL.push(c)
	}
	return c
}

func (e *pessimExecutor[V, L]) pushAbortFrom(workerID int, c *pessimContext[V, L]) {
	c.setState(stateUnscheduled)
	e.updateCurrMinPending(workerID, c)
	e.nextWL.push(c)
}

func (e *pessimExecutor[V, L]) execute() *Stats {
	for {
		e.beginRound()
		if e.doneRounds() {
			break
		}
		e.expandNhood()
		e.serviceAborts()
		e.executeSources()
		e.applyOperator()
		e.performCommits()
		if e.exhausted() {
			break
		}
	}
	return e.buildStats()
}

func (e *pessimExecutor[V, L]) expandNhood() {
	forEachChunked(e.pool, e.currWL, e.cfg.ChunkExpand, func(workerID int, c *pessimContext[V, L]) {
		c.schedule(workerID)
		e.nhFunc(c.Active(), c)
	})
}

func (e *pessimExecutor[V, L]) executeSources() {
	if e.exFunc == nil {
		return
	}
	forEachChunked(e.pool, e.currWL, e.cfg.ChunkExec, func(_ int, c *pessimContext[V, L]) {
		if c.isSrc() {
			e.exFunc(c.Active(), c)
		}
	})
}

// applyOperator runs the operator on every source that survived
// neighborhood acquisition. Unlike OPTIM there is no sharers history
// to update: priorityAcquire already resolved every conflict inline.
func (e *pessimExecutor[V, L]) applyOperator() {
	forEachChunked(e.pool, e.currWL, e.cfg.ChunkOp, func(workerID int, c *pessimContext[V, L]) {
		if !c.isSrc() {
			if c.casState(stateScheduled, stateAborting) {
				c.doAbort(func(x *pessimContext[V, L]) { e.pushAbortFrom(workerID, x) })
			}
			return
		}

		err := e.opFunc(c.Active(), c)
		if err != nil || !c.isSrc() {
			if c.casState(stateScheduled, stateAborting) {
				c.doAbort(func(x *pessimContext[V, L]) { e.pushAbortFrom(workerID, x) })
			}
			return
		}

		if !c.casState(stateScheduled, stateReadyToCommit) {
			e.cfg.Logger.Fatalf("galois: CAS SCHEDULED->READY_TO_COMMIT failed unexpectedly")
			return
		}
		e.commitQ.push(c)
		e.roundCommits++
		if e.cfg.EnableParaMeter {
			c.markExecRound(e.rounds)
		}
	})
}

package galois

// execBase holds the mechanics shared by optimExecutor and
// pessimExecutor: the work-stealing pool, the window worklist and its
// admission target, the round-current/round-next worklists, the
// commit queue, the per-worker pending-minimum slots that make up the
// GVT, and the running totals behind Stats.
type execBase[C comparable] struct {
	cfg     *Config
	pool    *pool
	ctxtCmp func(a, b C) bool

	winWL        windowWL[C]
	windowTarget int

	currWL []C
	nextWL ctxtWL[C]

	commitQ ctxtWL[C]

	currMinPending []minPendingSlot[C]

	rounds       int
	roundTasks   int
	roundCommits int
	totalRetires int
	totalTasks   int
	stepStats    []StepStats
}

func newExecBase[C comparable](cfg *Config, ctxtCmp func(a, b C) bool, win windowWL[C]) *execBase[C] {
	p := newPool(cfg.Workers)
	return &execBase[C]{
		cfg:            cfg,
		pool:           p,
		ctxtCmp:        ctxtCmp,
		winWL:          win,
		currMinPending: make([]minPendingSlot[C], p.workers),
	}
}

func (b *execBase[C]) getMinWinWL() (C, bool) {
	return b.winWL.peekMin()
}

func (b *execBase[C]) updateCurrMinPending(workerID int, c C) {
	if workerID < 0 || workerID >= len(b.currMinPending) {
		workerID = 0
	}
	b.currMinPending[workerID].update(c, b.ctxtCmp)
}

// getMinPending computes the global virtual time: the minimum, over
// the window worklist head and every worker's pending minimum, of
// what could still become runnable this round.
func (b *execBase[C]) getMinPending() (C, bool) {
	m, ok := b.getMinWinWL()
	for i := range b.currMinPending {
		c, set := b.currMinPending[i].get()
		if !set {
			continue
		}
		if !ok || b.ctxtCmp(c, m) {
			m, ok = c, true
		}
	}
	return m, ok
}

func (b *execBase[C]) resetRoundMins() {
	for i := range b.currMinPending {
		b.currMinPending[i].reset()
	}
}

func (b *execBase[C]) beginRound() {
	b.rounds++
	b.resetRoundMins()

	drained := b.nextWL.drain()
	b.currWL = append(b.currWL[:0], drained...)

	if b.cfg.TargetCommitRatio > 0 {
		for len(b.currWL) < b.windowTarget {
			c, ok := b.winWL.popMin()
			if !ok {
				break
			}
			b.currWL = append(b.currWL, c)
		}
	}

	b.roundTasks = len(b.currWL)
	b.roundCommits = 0
	if b.cfg.EnableParaMeter {
		b.stepStats = append(b.stepStats, StepStats{Round: b.rounds, TasksScheduled: b.roundTasks})
	}
	b.cfg.tracef("round %d: admitted %d tasks", b.rounds, b.roundTasks)
}

func (b *execBase[C]) doneRounds() bool {
	return len(b.currWL) == 0
}

func (b *execBase[C]) exhausted() bool {
	return b.cfg.MaxIterations > 0 && b.rounds >= b.cfg.MaxIterations
}

func (b *execBase[C]) buildStats() *Stats {
	return &Stats{
		Loopname:     b.cfg.Loopname,
		Mode:         b.cfg.Mode,
		Rounds:       b.rounds,
		TotalTasks:   b.totalTasks,
		TotalRetired: b.totalRetires,
		StepRecords:  b.stepStats,
	}
}

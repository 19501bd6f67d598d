package galois

import "sync/atomic"

// optimContext is the OPTIM task context: speculative neighborhood
// acquisition via markMin, a sharers-history entry per acquired item,
// and a child list walked during cascaded abort.
type optimContext[V any, L comparable] struct {
	*specContext[V]

	exec *optimExecutor[V, L]

	onWL     atomic.Bool
	addBack  bool
	nhood    []*nhoodItem[V, L]
	children []*optimContext[V, L]
}

func newOptimContext[V any, L comparable](active V, exec *optimExecutor[V, L]) *optimContext[V, L] {
	return &optimContext[V, L]{
		specContext: newSpecContext(active),
		exec:        exec,
		addBack:     true,
	}
}

// schedule resets the per-attempt fields ahead of a fresh nhFunc call.
func (c *optimContext[V, L]) schedule() {
	c.specContext.schedule()
	c.onWL.Store(false)
	c.addBack = true
	c.nhood = c.nhood[:0]
	c.children = c.children[:0]
}

// Acquire implements Handle.
func (c *optimContext[V, L]) Acquire(l L) {
	nitem := c.exec.nhmgr.getItem(l)
	for _, n := range c.nhood {
		if n == nitem {
			return
		}
	}
	c.nhood = append(c.nhood, nitem)
	nitem.markMin(c)
}

func (c *optimContext[V, L]) addChild(ch *optimContext[V, L]) {
	c.children = append(c.children, ch)
}

func (c *optimContext[V, L]) addToHistory() {
	for _, n := range c.nhood {
		n.addToHistory(c)
	}
}

// isCommitSrc reports whether c sits at the head of every nhood item
// it shares, i.e. nothing must retire before it.
func (c *optimContext[V, L]) isCommitSrc() bool {
	for _, n := range c.nhood {
		if n.getHistHead() != c {
			return false
		}
	}
	return true
}

// findCommitSrc, called right after c commits, discovers the new
// commit sources its retirement exposed and enqueues them.
func (c *optimContext[V, L]) findCommitSrc(gvt *optimContext[V, L], hasGVT bool, enqueue func(*optimContext[V, L])) {
	for _, n := range c.nhood {
		h := n.getHistHead()
		if h == nil || h == c {
			continue
		}
		if hasGVT && !c.exec.ctxtCmp(h, gvt) {
			continue
		}
		if h.isCommitSrc() && h.onWL.CompareAndSwap(false, true) {
			enqueue(h)
		}
	}
}

// isAbortSrc reports whether c is ready to abort and sits at the tail
// of every nhood item it shares.
func (c *optimContext[V, L]) isAbortSrc() bool {
	if !c.hasState(stateReadyToAbort) {
		return false
	}
	for _, n := range c.nhood {
		if n.getHistTail() != c {
			return false
		}
	}
	return true
}

// findAbortSrc discovers, after c is scheduled for abort, the new
// abort sources its removal from the tail exposes.
func (c *optimContext[V, L]) findAbortSrc(enqueue func(*optimContext[V, L])) {
	for _, n := range c.nhood {
		t := n.getHistTail()
		if t != nil && t.isAbortSrc() && t.onWL.CompareAndSwap(false, true) {
			enqueue(t)
		}
	}
}

func (c *optimContext[V, L]) findAborts(enqueue func(*optimContext[V, L])) bool {
	ret := false
	for _, n := range c.nhood {
		if n.findAborts(c, enqueue) {
			ret = true
		}
	}
	return ret
}

// markForAbortRecursive is the cascade at the heart of OPTIM: a
// READY_TO_COMMIT task is demoted to READY_TO_ABORT and every child it
// already spawned is recursively marked too, with addBack cleared so
// those children vanish instead of being retried (their parent is
// retrying and will respawn them). A SCHEDULED or UNSCHEDULED task
// that hasn't committed anything yet simply becomes ABORTED_CHILD.
func (c *optimContext[V, L]) markForAbortRecursive(enqueue func(*optimContext[V, L])) {
	if c.casState(stateReadyToCommit, stateReadyToAbort) {
		for _, n := range c.nhood {
			n.markForAbort(c, enqueue)
		}
		if c.isAbortSrc() && c.onWL.CompareAndSwap(false, true) {
			enqueue(c)
		}
		for _, ch := range c.children {
			ch.markForAbortRecursive(enqueue)
			ch.addBack = false
		}
		return
	}
	if c.casState(stateScheduled, stateAbortedChild) {
		return
	}
	c.casState(stateUnscheduled, stateAbortedChild)
}

// resetMarks drops any claim c still holds on its nhood items' minCtxt
// after a round, so the next round starts clean.
func (c *optimContext[V, L]) resetMarks() {
	for _, n := range c.nhood {
		if n.getMin() == c {
			n.resetMin(c)
		}
	}
}

func (c *optimContext[V, L]) doCommit() error {
	c.userHandle.commit()
	for _, n := range c.nhood {
		if err := n.removeCommit(c); err != nil {
			return err
		}
	}
	c.setState(stateCommitDone)
	return nil
}

func (c *optimContext[V, L]) doAbort(pushAbort func(*optimContext[V, L])) error {
	c.userHandle.rollback()
	for _, n := range c.nhood {
		if err := n.removeAbort(c); err != nil {
			return err
		}
	}
	if c.addBack {
		c.setState(stateAbortDone)
		pushAbort(c)
	} else {
		c.setState(stateAbortedChild)
	}
	return nil
}

package main

import "sync"

// unionFind is the shared structure connected components merges into.
// Every mutation happens from the sole surviving source for the nodes
// involved (guaranteed by neighborhood acquisition), but it still
// keeps its own mutex: the executor's acquire protocol guarantees
// serialization of committed history, not of two never-conflicting
// edges that happen to touch the same slice.
type unionFind struct {
	mu     sync.Mutex
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.findLocked(x)
}

func (u *unionFind) findLocked(x int) int {
	for u.parent[x] != x {
		x = u.parent[x]
	}
	return x
}

// union merges the components of a and b, returning whether a merge
// happened and, if so, the root that was repointed (for undo).
func (u *unionFind) union(a, b int) (changed bool, movedRoot int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	ra, rb := u.findLocked(a), u.findLocked(b)
	if ra == rb {
		return false, 0
	}
	u.parent[ra] = rb
	return true, ra
}

// revert undoes a union that repointed root at itself.
func (u *unionFind) revert(root int) {
	u.mu.Lock()
	u.parent[root] = root
	u.mu.Unlock()
}

func (u *unionFind) numComponents() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	seen := make(map[int]struct{})
	for i := range u.parent {
		seen[u.findLocked(i)] = struct{}{}
	}
	return len(seen)
}

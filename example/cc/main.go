// Command cc is a minimal worked example of the public API: connected
// components over a small synthetic graph, processing edges as the
// ordered work items and node identity as the shared neighborhood
// object. It deliberately stays tiny — graph loading and a real
// Lonestar-style kernel are out of scope here; this is a smoke test of
// ForEachOrderedOptim's acquire/commit/undo contract, not a graph
// library.
package main

import (
	"fmt"

	galois "github.com/nicelhc13/Galois"
)

type edge struct {
	id   int
	from int
	to   int
}

func syntheticGraph() (numNodes int, edges []edge) {
	numNodes = 12
	pairs := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 4},
		{7, 8}, {8, 9}, {9, 10}, {10, 11},
		{3, 4}, // bridges the first two clusters
	}
	edges = make([]edge, len(pairs))
	for i, p := range pairs {
		edges[i] = edge{id: i, from: p[0], to: p[1]}
	}
	return numNodes, edges
}

func main() {
	numNodes, edges := syntheticGraph()
	uf := newUnionFind(numNodes)

	cmp := func(a, b edge) bool { return a.id < b.id }

	nhFunc := func(e edge, h galois.Handle[edge, int]) {
		h.Acquire(e.from)
		h.Acquire(e.to)
	}

	opFunc := func(e edge, h galois.Handle[edge, int]) error {
		changed, movedRoot := uf.union(e.from, e.to)
		if changed {
			h.RecordUndo(func() { uf.revert(movedRoot) })
		}
		return nil
	}

	stats := galois.ForEachOrderedOptim[edge, int](edges, cmp, nhFunc, nil, opFunc,
		galois.WithLoopname("connected-components"),
		galois.WithParaMeter(true),
	)

	fmt.Printf("processed %d/%d edges across %d rounds\n", stats.TotalRetired, stats.TotalTasks, stats.Rounds)
	fmt.Println("components:", uf.numComponents())
}

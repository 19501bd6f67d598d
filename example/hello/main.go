package main

import (
	"fmt"
	"time"

	galois "github.com/nicelhc13/Galois"
)

// A trivial counter task: each item acquires a single shared counter
// slot and increments it, demonstrating the minimal nhFunc/opFunc
// shape without any domain logic.
type counterKey struct{}

func main() {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	var total int

	cmp := func(a, b int) bool { return a < b }
	nhFunc := func(item int, h galois.Handle[int, counterKey]) {
		h.Acquire(counterKey{})
	}
	opFunc := func(item int, h galois.Handle[int, counterKey]) error {
		h.RecordCommit(func() { total++ })
		return nil
	}

	start := time.Now()
	stats := galois.ForEachOrderedOptim[int, counterKey](items, cmp, nhFunc, nil, opFunc,
		galois.WithLoopname("hello"),
	)
	fmt.Println("execution took", time.Since(start))
	fmt.Println("retired", stats.TotalRetired, "of", stats.TotalTasks, "total", total)
}

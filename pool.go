package galois

import (
	"runtime"
	"sync"

	"github.com/zhiqiangxu/util"
)

// workDeque is one worker's chunk queue: popped from the front by its
// owner, stolen from the back by idle neighbors.
type workDeque[C any] struct {
	mu    sync.Mutex
	items []C
}

func (d *workDeque[C]) pushChunk(items []C) {
	d.mu.Lock()
	d.items = append(d.items, items...)
	d.mu.Unlock()
}

func (d *workDeque[C]) popChunk(n int) []C {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return nil
	}
	if n > len(d.items) {
		n = len(d.items)
	}
	chunk := d.items[:n]
	d.items = d.items[n:]
	return chunk
}

func (d *workDeque[C]) stealChunk(n int) []C {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return nil
	}
	if n > len(d.items) {
		n = len(d.items)
	}
	chunk := d.items[len(d.items)-n:]
	d.items = d.items[:len(d.items)-n]
	return chunk
}

// pool is a work-stealing goroutine pool that drives every round
// pipeline stage as one chunked parallel pass.
type pool struct {
	workers int
}

func newPool(workers int) *pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &pool{workers: workers}
}

// forEachChunked partitions items round-robin into per-worker deques
// in chunkSize units, then runs fn over every item, a worker stealing
// from its neighbors once its own deque runs dry.
func forEachChunked[C any](p *pool, items []C, chunkSize int, fn func(workerID int, item C)) {
	if len(items) == 0 {
		return
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	workers := p.workers
	if workers > len(items) {
		workers = len(items)
	}
	if workers < 1 {
		workers = 1
	}

	deques := make([]*workDeque[C], workers)
	for i := range deques {
		deques[i] = &workDeque[C]{}
	}
	for i, chunkIdx := 0, 0; i < len(items); i, chunkIdx = i+chunkSize, chunkIdx+1 {
		end := i + chunkSize
		if end > len(items) {
			end = len(items)
		}
		deques[chunkIdx%workers].pushChunk(items[i:end])
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		workerID := w
		util.GoFunc(&wg, func() {
			runChunkedWorker(deques, workerID, chunkSize, fn)
		})
	}
	wg.Wait()
}

func runChunkedWorker[C any](deques []*workDeque[C], id int, chunkSize int, fn func(workerID int, item C)) {
	mine := deques[id]
	for {
		chunk := mine.popChunk(chunkSize)
		if chunk == nil {
			chunk = stealFrom(deques, id, chunkSize)
			if chunk == nil {
				return
			}
		}
		for _, item := range chunk {
			fn(id, item)
		}
	}
}

func stealFrom[C any](deques []*workDeque[C], id int, chunkSize int) []C {
	for i := 1; i < len(deques); i++ {
		victim := deques[(id+i)%len(deques)]
		if chunk := victim.stealChunk(chunkSize); chunk != nil {
			return chunk
		}
	}
	return nil
}

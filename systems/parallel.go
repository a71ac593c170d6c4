package systems

import "sync"

// parallelThreshold is the minimum particle count to shard the update.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 2048

// shardChunk is a half-open particle range handed to a worker.
type shardChunk struct {
	start, end int
}

// shardPool runs the per-particle loop on persistent worker goroutines.
// Each particle's output depends only on its own baseline, so shards write
// disjoint ranges and need no locking. run returns after every shard is done.
type shardPool struct {
	numWorkers int
	fn         func(start, end int)

	workChan chan shardChunk // sends work to workers
	doneChan chan struct{}   // workers signal completion
	stopChan chan struct{}   // signals workers to exit
	wg       sync.WaitGroup  // tracks active workers
}

func newShardPool(numWorkers int) *shardPool {
	p := &shardPool{
		numWorkers: numWorkers,
		workChan:   make(chan shardChunk, numWorkers),
		doneChan:   make(chan struct{}, numWorkers),
		stopChan:   make(chan struct{}),
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// worker processes chunks until stopped.
func (p *shardPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case chunk := <-p.workChan:
			p.fn(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run splits [0, n) into one chunk per worker and blocks until all finish.
// fn is published to workers through the channel send.
func (p *shardPool) run(n int, fn func(start, end int)) {
	p.fn = fn

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	sent := 0
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		p.workChan <- shardChunk{start: start, end: end}
		sent++
	}

	for i := 0; i < sent; i++ {
		<-p.doneChan
	}
	p.fn = nil
}

// stop signals all workers to exit and waits for them.
func (p *shardPool) stop() {
	close(p.stopChan)
	p.wg.Wait()
}

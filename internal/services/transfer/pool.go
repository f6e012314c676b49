package transfer

import "sync"

// Pool runs engine jobs on a fixed set of workers with a bounded
// queue, so a burst of transfers cannot spawn unbounded background
// work. Submit blocks once the queue is full.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPool starts a pool with the given worker count and queue size.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	p := &Pool{jobs: make(chan func(), queueSize)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

// Submit queues a job for execution. Jobs submitted after Shutdown are
// dropped.
func (p *Pool) Submit(job func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.jobs <- job
}

// Depth reports the number of queued jobs not yet picked up.
func (p *Pool) Depth() int {
	return len(p.jobs)
}

// Shutdown stops accepting jobs and waits for in-flight runs to reach
// their terminal states.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.jobs)
	p.wg.Wait()
}

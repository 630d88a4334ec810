package jobs

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrPoolStopped is returned by Submit after Stop
var ErrPoolStopped = errors.New("worker pool is shutting down")

// Job represents a unit of work
type Job struct {
	ID      string
	Execute func() error
}

// WorkerPool runs jobs on a fixed number of goroutines. A failing or
// panicking job never takes its worker down.
type WorkerPool struct {
	workerCount int
	jobQueue    chan Job
	wg          sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	pool := &WorkerPool{
		workerCount: workerCount,
		jobQueue:    make(chan Job, workerCount*2), // Buffer size = 2x workers
	}

	for i := 0; i < workerCount; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	log.Printf("Started worker pool with %d workers", workerCount)
	return pool
}

// worker processes jobs until the queue is closed and drained
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobQueue {
		if err := p.run(job); err != nil {
			log.Printf("Worker %d job %s failed: %v", id, job.ID, err)
		}
	}
}

func (p *WorkerPool) run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job.Execute()
}

// Submit adds a job to the queue, blocking while the queue is full
func (p *WorkerPool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}
	p.jobQueue <- job
	return nil
}

// Stop rejects new jobs, lets queued jobs finish and waits for workers
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
	log.Println("Worker pool stopped")
}

// QueueSize returns the current number of jobs in queue
func (p *WorkerPool) QueueSize() int {
	return len(p.jobQueue)
}

// Workers returns the number of workers
func (p *WorkerPool) Workers() int {
	return p.workerCount
}

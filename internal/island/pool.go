package island

import (
	"context"
	"fmt"
	"io"
	"sync"

	"islandgen/internal/config"
)

// Job is a request to generate one island and write it to Output.
type Job struct {
	Name   string
	Params config.Parameters
	Output string
	// Result channel - will be sent the result when done
	ResultChan chan JobResult
}

// JobResult contains the outcome of one job.
type JobResult struct {
	Name   string
	Result *Result
	Err    error
}

// WorkerPool runs independent generation jobs on a fixed set of goroutines.
// Jobs share nothing but the progress writer, which is serialized.
type WorkerPool struct {
	jobQueue chan Job
	workers  int
	opts     Options
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	// mu guards closed; submitters hold it shared while sending.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a pool of workers. opts.Recorder is ignored: every
// job records its own timings.
func NewWorkerPool(workers int, queueSize int, opts Options) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	if opts.Progress != nil {
		opts.Progress = &lockedWriter{w: opts.Progress}
	}
	opts.Recorder = nil

	pool := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		workers:  workers,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	return pool
}

// SubmitJob submits a job to the pool.
// Returns true if job was submitted successfully, false if queue is full
// or the pool has been shut down.
func (p *WorkerPool) SubmitJob(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued or the pool is cancelled.
func (p *WorkerPool) SubmitJobBlocking(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobQueue {
		if p.ctx.Err() != nil {
			return
		}
		opts := p.opts
		if opts.Progress != nil {
			opts.Progress = &prefixWriter{w: opts.Progress, prefix: "[" + job.Name + "] "}
		}
		res, err := Run(job.Params, job.Output, opts)
		if job.ResultChan == nil {
			continue
		}
		result := JobResult{Name: job.Name, Result: res, Err: err}

		select {
		case job.ResultChan <- result:
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish.
// Later calls return immediately.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}

// Cancel abandons queued jobs. Jobs already running finish but their results are dropped.
func (p *WorkerPool) Cancel() {
	p.cancel()
}

// QueueLength returns the current number of jobs in the queue
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}

// RunAll generates every job on the given number of workers and returns the
// results in job order. Job names must be unique. The first error is
// returned after all jobs complete.
func RunAll(jobs []Job, workers int, opts Options) ([]JobResult, error) {
	pool := NewWorkerPool(workers, len(jobs), opts)
	results := make(chan JobResult, len(jobs))
	for _, job := range jobs {
		job.ResultChan = results
		pool.SubmitJobBlocking(job)
	}
	pool.Shutdown()
	close(results)

	byName := make(map[string]JobResult, len(jobs))
	for r := range results {
		byName[r.Name] = r
	}

	out := make([]JobResult, 0, len(jobs))
	var firstErr error
	for _, job := range jobs {
		r := byName[job.Name]
		if r.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", job.Name, r.Err)
		}
		out = append(out, r)
	}
	return out, firstErr
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// prefixWriter tags each write with the job name. Progress lines are
// written one per call.
type prefixWriter struct {
	w      io.Writer
	prefix string
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	line := make([]byte, 0, len(p.prefix)+len(b))
	line = append(line, p.prefix...)
	line = append(line, b...)
	if _, err := p.w.Write(line); err != nil {
		return 0, err
	}
	return len(b), nil
}

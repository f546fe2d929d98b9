package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type job struct {
	name string
	run  func(context.Context)
}

// Pool runs fire-and-forget tasks on a fixed number of workers fed by a
// bounded queue.
type Pool struct {
	workers int
	logger  *zap.Logger

	jobs    chan job
	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending sync.WaitGroup
}

// NewPool constructs pool with the given worker count and queue length.
func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &Pool{
		workers: workers,
		logger:  logger,
		jobs:    make(chan job, queueSize),
	}
}

// Start launches the workers. Tasks outlive the cancellation of ctx and are
// only cancelled by Stop.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}
}

// Submit enqueues task without blocking. It returns false when the queue is
// full or the pool is stopped; the task is dropped in that case.
func (p *Pool) Submit(name string, task func(context.Context)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		p.logger.Warn("task dropped, pool stopped", zap.String("task", name))
		return false
	}

	p.pending.Add(1)
	select {
	case p.jobs <- job{name: name, run: task}:
		return true
	default:
		p.pending.Done()
		p.logger.Warn("task dropped, queue saturated", zap.String("task", name))
		return false
	}
}

// Stop rejects new tasks, lets the workers drain the queue and then cancels
// the task context. If ctx expires first, running tasks are cancelled early.
func (p *Pool) Stop(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	started := p.started
	p.mu.Unlock()

	if !started {
		for j := range p.jobs {
			p.logger.Warn("task discarded, pool never started", zap.String("task", j.name))
			p.pending.Done()
		}
		return
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.logger.Warn("pool drain interrupted", zap.Error(ctx.Err()))
		p.cancel()
		<-done
	}
	p.cancel()
}

// Wait blocks until every accepted task has finished.
func (p *Pool) Wait() {
	p.pending.Wait()
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for j := range p.jobs {
		p.run(ctx, j)
	}
}

func (p *Pool) run(ctx context.Context, j job) {
	defer p.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", zap.String("task", j.name), zap.Any("panic", r))
		}
	}()
	j.run(ctx)
}

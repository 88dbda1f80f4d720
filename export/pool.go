package export

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/newsarchive"
)

// Default pool settings.
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 16
)

// Task is a unit of background work. The context is never canceled by the
// pool.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed number of workers fed by a bounded queue.
type Pool struct {
	logger  *slog.Logger
	workers int
	ch      chan Task
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueSize sets how many tasks may wait for a worker.
func WithQueueSize(n int) PoolOption {
	return func(p *Pool) {
		if n >= 0 {
			p.ch = make(chan Task, n)
		}
	}
}

// WithPoolLogger sets the pool's logger.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.logger = logger
	}
}

// NewPool creates a Pool and starts its workers.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		logger:  slog.New(slog.DiscardHandler),
		workers: DefaultWorkers,
		ch:      make(chan Task, DefaultQueueSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(i + 1)
	}
	return p
}

func (p *Pool) work(workerID int) {
	defer p.wg.Done()
	for task := range p.ch {
		p.run(workerID, task)
	}
}

func (p *Pool) run(workerID int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", "worker_id", workerID, "panic", r)
		}
	}()
	task(context.Background())
}

// Submit queues task without blocking. Returns EUNAVAILABLE when the queue
// is full or the pool is shutting down.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return newsarchive.Errorf(newsarchive.EUNAVAILABLE, "export queue is shutting down")
	}
	select {
	case p.ch <- task:
		return nil
	default:
		p.logger.Warn("export queue full", "capacity", cap(p.ch))
		return newsarchive.Errorf(newsarchive.EUNAVAILABLE, "too many exports in progress, try again later")
	}
}

// Shutdown stops accepting tasks and waits for queued and running tasks to
// finish or for ctx to end.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		p.logger.Warn("export pool shutdown interrupted")
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Package worker runs fire-and-forget tasks on a fixed set of goroutines fed
// by a bounded queue.
package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

const logPrefix = "[WORKER-POOL]"

//go:generate mockgen -source=pool.go -destination=mock/pool_mock.go -package=mock

type Submitter interface {
	// Submit queues task without blocking. It fails with common.ErrQueueFull
	// or common.ErrWorkerStopped.
	Submit(ctx context.Context, task Task) error
}

type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type queued struct {
	ctx  context.Context
	task Task
}

type Pool struct {
	workers int
	timeout time.Duration
	tasks   chan queued

	mu      sync.RWMutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

var _ Submitter = (*Pool)(nil)

func New(cfg config.DispatcherConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	return &Pool{
		workers: cfg.Workers,
		timeout: cfg.TaskTimeout,
		tasks:   make(chan queued, cfg.QueueSize),
	}
}

func (p *Pool) Start() graceful.ProcessStarter {
	return func() error {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.started || p.stopped {
			return nil
		}
		p.started = true

		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.work(i)
		}
		return nil
	}
}

// Stop refuses new tasks, lets the workers drain the queue and waits for them
// until ctx is done.
func (p *Pool) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return nil
		}
		p.stopped = true
		close(p.tasks)
		p.mu.Unlock()

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return fmt.Errorf("worker pool drain: %w", ctx.Err())
		}
	}
}

func (p *Pool) Submit(ctx context.Context, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return common.ErrWorkerStopped
	}

	select {
	case p.tasks <- queued{ctx: context.WithoutCancel(ctx), task: task}:
		return nil
	default:
		return common.ErrQueueFull
	}
}

func (p *Pool) work(id int) {
	defer p.wg.Done()

	for q := range p.tasks {
		p.run(id, q)
	}
}

func (p *Pool) run(id int, q queued) {
	ctx := q.ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			xlog.Error(ctx, logPrefix,
				xlog.String("task", q.task.Name),
				xlog.Int("worker", id),
				xlog.Any("panic", r),
				xlog.String("stack", string(debug.Stack())))
		}
	}()

	if err := q.task.Run(ctx); err != nil {
		xlog.Warn(ctx, logPrefix,
			xlog.String("task", q.task.Name),
			xlog.Int("worker", id),
			xlog.Err(err))
	}
}

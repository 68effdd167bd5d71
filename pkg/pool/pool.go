package pool

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrPoolTerminated = errors.New("pool is terminated")
	ErrTimeout        = errors.New("timeout")
)

// Pool is a bounded worker pool. Submitting blocks for at most the given
// timeout when the backlog is full, so a stuck consumer surfaces as a
// scheduling error instead of unbounded memory growth.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc

	workers int

	tasks chan Task
	wait  sync.WaitGroup
}

func NewPool(size int, workers int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &Pool{
		ctx:     ctx,
		cancel:  cancel,
		workers: workers,
		tasks:   make(chan Task, size),
	}

	pool.wait.Add(workers)

	for i := 0; i < workers; i++ {
		go pool.consume()
	}

	return pool
}

func (p *Pool) SubmitFn(timeout time.Duration, fn func()) error {
	if fn == nil {
		return errors.New("fn is nil")
	}

	return p.Submit(timeout, &task{fn: fn})
}

func (p *Pool) Submit(timeout time.Duration, task Task) error {
	if task == nil {
		return errors.New("task is nil")
	}

	if p.ctx.Err() != nil {
		return ErrPoolTerminated
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case p.tasks <- task:
		return nil
	case <-timer.C:
		return ErrTimeout
	}
}

func (p *Pool) consume() {
	defer p.wait.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.tasks:
			t.Execute()
		}
	}
}

func (p *Pool) Shutdown() {
	if err := p.ctx.Err(); err != nil {
		return
	}

	p.cancel()
	p.wait.Wait()
}

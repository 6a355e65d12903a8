package worker

import (
	"context"
	"log"
	"sync"
)

// Task is one unit of background work, run on a pool goroutine.
type Task func(ctx context.Context)

// Pool is a small tracked task pool. Tasks triggered by the hotkey or menu
// run here instead of on naked goroutines so shutdown can drain in-flight
// work.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type job struct {
	ctx  context.Context
	task Task
}

const queueSlots = 4

// New creates a pool of n workers. n defaults to 2 when non-positive; one
// worker per concurrent query is plenty for a hand-triggered tool.
func New(n int) *Pool {
	if n <= 0 {
		n = 2
	}
	p := &Pool{jobs: make(chan job, queueSlots)}
	p.start(n)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				if j.ctx.Err() != nil {
					continue
				}
				p.run(j)
			}
		}()
	}
}

func (p *Pool) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in worker task: %v", r)
		}
	}()
	j.task(j.ctx)
}

// Submit enqueues a task if a queue slot is free. Returns false if dropped.
// The lock is held across the send so Submit cannot race with Close.
func (p *Pool) Submit(ctx context.Context, task Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}

	select {
	case p.jobs <- job{ctx: ctx, task: task}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining queued and in-flight work.
func (p *Pool) Close() {
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

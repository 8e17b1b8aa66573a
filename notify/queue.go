// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
	"time"
)

// DefaultDelay is the pause the worker takes after each task.
const DefaultDelay = 100 * time.Millisecond

// DefaultSize is the queue capacity used by NewQueue when size <= 0.
const DefaultSize = 256

// Task is a unit of background work. It receives the worker's context.
type Task func(ctx context.Context)

type job struct {
	name string
	run  Task
}

// Queue runs tasks one at a time, in submission order, on a single worker.
// Delivery is best-effort: a full queue drops new tasks and anything still
// queued when Run returns is lost.
type Queue struct {
	jobs  chan job
	delay time.Duration
}

func NewQueue(size int, delay time.Duration) *Queue {
	if size <= 0 {
		size = DefaultSize
	}
	if delay < 0 {
		delay = 0
	}
	return &Queue{jobs: make(chan job, size), delay: delay}
}

// Enqueue submits a task without blocking. It reports false if the task was
// dropped because the queue is full.
func (q *Queue) Enqueue(name string, task Task) bool {
	select {
	case q.jobs <- job{name: name, run: task}:
		return true
	default:
		slog.Warn("Notification queue full, dropping task", "task", name)
		return false
	}
}

// Len returns the number of tasks waiting to run.
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Run processes tasks until ctx is cancelled. It always returns nil so it
// can sit in an errgroup next to the HTTP server.
func (q *Queue) Run(ctx context.Context) error {
	slog.Debug("Notification worker started", "delay", q.delay)
	for {
		select {
		case <-ctx.Done():
			if n := len(q.jobs); n > 0 {
				slog.Warn("Notification worker stopping, dropping queued tasks", "count", n)
			}
			return nil
		case j := <-q.jobs:
			q.runJob(ctx, j)
		}

		if q.delay > 0 {
			timer := time.NewTimer(q.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}
}

func (q *Queue) runJob(ctx context.Context, j job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Notification task panicked", "task", j.name, "panic", r)
		}
	}()
	j.run(ctx)
}

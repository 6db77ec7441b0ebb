package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"littletreat/internal/metrics"
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Dispatcher runs fire-and-forget work off the request path. Tasks run
// one at a time, each exactly once; failures are logged and counted.
type Dispatcher struct {
	tasks       chan task
	taskTimeout time.Duration
	metrics     *metrics.Metrics
}

func NewDispatcher(queueSize int, taskTimeout time.Duration, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		tasks:       make(chan task, queueSize),
		taskTimeout: taskTimeout,
		metrics:     m,
	}
}

// Enqueue never blocks. When the queue is full the task is dropped.
func (d *Dispatcher) Enqueue(name string, fn func(ctx context.Context) error) bool {
	select {
	case d.tasks <- task{name: name, fn: fn}:
		return true
	default:
		slog.Warn("dispatch queue full, dropping task", "task", name)
		d.metrics.TaskDone(metrics.OutcomeDropped)
		return false
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	slog.Info("starting dispatcher")
	for {
		select {
		case <-ctx.Done():
			d.drain()
			slog.Info("dispatcher stopped")
			return
		case t := <-d.tasks:
			d.run(t)
		}
	}
}

// drain runs whatever was queued before shutdown.
func (d *Dispatcher) drain() {
	for {
		select {
		case t := <-d.tasks:
			d.run(t)
		default:
			return
		}
	}
}

func (d *Dispatcher) run(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer cancel()

	start := time.Now()
	if err := safeCall(ctx, t.fn); err != nil {
		slog.Error("background task failed", "task", t.name, "error", err)
		d.metrics.TaskDone(metrics.OutcomeError)
		return
	}
	slog.Info("background task done", "task", t.name, "duration", time.Since(start))
	d.metrics.TaskDone(metrics.OutcomeOK)
}

func safeCall(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/infra/prometheus"
)

// Task runs in the background once the response has been written. The
// context is cancelled when the worker shuts down.
type Task func(ctx context.Context)

// Task kinds. The kind labels the dropped-task metric, so it must come from
// a fixed set and never carry per-request ids.
const (
	TaskSheets = "sheets"
	TaskMail   = "mail"
)

// TelemetryTask names the export task for an event type.
func TelemetryTask(eventType string) string {
	return "telemetry:" + eventType
}

type Worker interface {
	StartWorkers(n int)
	Enqueue(kind string, task Task) bool
	Shutdown(timeout time.Duration)
}

type job struct {
	name string
	task Task
}

type worker struct {
	logger   *logrus.Logger
	taskChan chan job
	ctx      context.Context
	cancel   context.CancelFunc
	closed   atomic.Bool
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

func NewWorker(logger *logrus.Logger, queueSize int) Worker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &worker{
		logger:   logger,
		taskChan: make(chan job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *worker) StartWorkers(n int) {
	if n <= 0 {
		n = 1
	}
	w.logger.WithField("workers", n).Info("starting dispatch workers")
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for j := range w.taskChan {
				w.run(j)
			}
		}()
	}
}

func (w *worker) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithFields(logrus.Fields{
				"task":  j.name,
				"panic": r,
			}).Error("dispatch task panicked")
		}
	}()
	j.task(w.ctx)
}

// Enqueue never blocks; it reports false when the task was dropped.
func (w *worker) Enqueue(kind string, task Task) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed.Load() {
		return false
	}
	select {
	case w.taskChan <- job{name: kind, task: task}:
		return true
	default:
		prometheus.DispatchDroppedTotal.WithLabelValues(kind).Inc()
		w.logger.WithField("task", kind).Warn("task queue is full, dropping task")
		return false
	}
}

// Shutdown stops accepting tasks and drains the queue. Tasks still running
// after timeout see their context cancelled.
func (w *worker) Shutdown(timeout time.Duration) {
	w.mu.Lock()
	if w.closed.Swap(true) {
		w.mu.Unlock()
		return
	}
	close(w.taskChan)
	w.mu.Unlock()

	w.logger.Info("shutting down dispatch workers")
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		w.logger.Warn("dispatch drain timed out, cancelling pending tasks")
		w.cancel()
		<-done
	}
	w.cancel()
	w.logger.Info("dispatch workers stopped")
}

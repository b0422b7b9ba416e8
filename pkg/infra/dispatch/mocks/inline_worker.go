package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/whopu/challenge/pkg/infra/dispatch"
)

// InlineWorker runs tasks on the calling goroutine and records their kinds.
type InlineWorker struct {
	mu    sync.Mutex
	Names []string
	// Reject makes Enqueue drop every task.
	Reject bool
}

func (w *InlineWorker) StartWorkers(int) {}

func (w *InlineWorker) Enqueue(kind string, task dispatch.Task) bool {
	w.mu.Lock()
	w.Names = append(w.Names, kind)
	w.mu.Unlock()
	if w.Reject {
		return false
	}
	task(context.Background())
	return true
}

func (w *InlineWorker) Shutdown(time.Duration) {}

func (w *InlineWorker) Enqueued() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.Names...)
}

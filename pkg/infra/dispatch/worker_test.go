package dispatch

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/whopu/challenge/pkg/infra/prometheus"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestWorker_RunsTasksAndDrainsOnShutdown(t *testing.T) {
	w := NewWorker(quietLogger(), 10)
	w.StartWorkers(2)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		assert.True(t, w.Enqueue("count", func(ctx context.Context) {
			ran.Add(1)
		}))
	}

	w.Shutdown(time.Second)
	assert.Equal(t, int32(5), ran.Load())
	assert.False(t, w.Enqueue("late", func(ctx context.Context) {}))
}

func TestWorker_DropsWhenFull(t *testing.T) {
	w := NewWorker(quietLogger(), 1)

	assert.True(t, w.Enqueue("first", func(ctx context.Context) {}))
	assert.False(t, w.Enqueue("second", func(ctx context.Context) {}))

	w.StartWorkers(1)
	w.Shutdown(time.Second)
}

func TestWorker_RecoversFromPanic(t *testing.T) {
	w := NewWorker(quietLogger(), 4)
	w.StartWorkers(1)

	var after atomic.Bool
	w.Enqueue("boom", func(ctx context.Context) { panic("boom") })
	w.Enqueue("after", func(ctx context.Context) { after.Store(true) })

	w.Shutdown(time.Second)
	assert.True(t, after.Load())
}

func TestWorker_ShutdownTimeoutCancelsContext(t *testing.T) {
	w := NewWorker(quietLogger(), 1)
	w.StartWorkers(1)

	var cancelled atomic.Bool
	w.Enqueue("slow", func(ctx context.Context) {
		<-ctx.Done()
		cancelled.Store(true)
	})

	w.Shutdown(20 * time.Millisecond)
	assert.True(t, cancelled.Load())

	// second call is a no-op
	w.Shutdown(time.Millisecond)
}

func TestWorker_DroppedTasksShareOneSeriesPerKind(t *testing.T) {
	prometheus.DispatchDroppedTotal.Reset()
	w := NewWorker(quietLogger(), 1)

	assert.True(t, w.Enqueue(TaskSheets, func(ctx context.Context) {}))
	for i := 0; i < 3; i++ {
		assert.False(t, w.Enqueue(TaskSheets, func(ctx context.Context) {}))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(prometheus.DispatchDroppedTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(prometheus.DispatchDroppedTotal.WithLabelValues(TaskSheets)))

	w.StartWorkers(1)
	w.Shutdown(time.Second)
}

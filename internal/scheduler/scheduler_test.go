package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/TactasRNG_Go/internal/testing/leaktest"
	"github.com/osse101/TactasRNG_Go/internal/worker"
)

// signalJob reports each run on Done
type signalJob struct {
	Done chan struct{}
}

func (m *signalJob) Process(ctx context.Context) error {
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &signalJob{Done: make(chan struct{}, 10)}
	sched.Schedule("test", 10*time.Millisecond, job)

	timeout := time.After(200 * time.Millisecond)
	runCount := 0
	for runCount < 3 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}
	assert.GreaterOrEqual(t, runCount, 3)

	sched.Stop()
	pool.Stop()
	checker.Check(0)
}

func TestScheduler_ZeroIntervalDisabled(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &signalJob{Done: make(chan struct{}, 1)}
	sched.Schedule("disabled", 0, job)
	sched.Stop()

	select {
	case <-job.Done:
		t.Fatal("disabled job ran")
	case <-time.After(30 * time.Millisecond):
	}
}

// Package scheduler enqueues periodic jobs onto the worker pool.
package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/logger"
	"github.com/osse101/TactasRNG_Go/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job once now and then every interval.
// A full queue skips the tick instead of stalling the scheduler.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	if interval <= 0 {
		logger.Warn("Scheduled job disabled", "job", name, "interval", interval)
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.pool.TryEnqueue(job)
		for {
			select {
			case <-ticker.C:
				if !s.pool.TryEnqueue(job) {
					logger.Warn("Scheduled job skipped", "job", name)
				}
			case <-s.quit:
				return
			}
		}
	}()
	logger.Info("Scheduled job registered", "job", name, "interval", interval)
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/worker"
)

const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgJobEnqueued  = "Scheduled job enqueued"
	LogMsgStopped      = "Scheduler stopped"
)

// Scheduler hands jobs to a worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule starts enqueueing job every interval until Stop. The first run
// happens one interval from now.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	logger.Info(LogMsgJobScheduled, "job", name, "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Blocks while the pool queue is full; returns false once the pool stops
				if !s.workerPool.Enqueue(job) {
					return
				}
				logger.Debug(LogMsgJobEnqueued, "job", name)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
		logger.Info(LogMsgStopped)
	})
}

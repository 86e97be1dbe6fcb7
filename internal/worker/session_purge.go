package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// SessionPurger deletes sessions that expired before now
type SessionPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionPurgeJob removes expired sessions and announces how many went
type SessionPurgeJob struct {
	store     SessionPurger
	publisher event.Publisher
	now       func() time.Time
}

// NewSessionPurgeJob creates the purge job. publisher may be nil.
func NewSessionPurgeJob(store SessionPurger, publisher event.Publisher) *SessionPurgeJob {
	return &SessionPurgeJob{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Process implements Job
func (j *SessionPurgeJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSessionPurgeStarting)

	n, err := j.store.PurgeExpired(ctx, j.now())
	if err != nil {
		log.Error(LogMsgSessionPurgeFailed, "error", err)
		return fmt.Errorf("failed to purge sessions: %w", err)
	}

	log.Info(LogMsgSessionPurgeCompleted, "purged", n)
	if n > 0 && j.publisher != nil {
		j.publisher.PublishWithRetry(ctx, event.NewSessionsPurgedEvent(n))
	}
	return nil
}

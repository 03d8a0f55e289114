package activitylog

import (
	"context"
	"log"
	"time"

	"zeeknet-ats/internal/domain/activity"
	"zeeknet-ats/internal/repository"
)

const (
	retryBuffer   = 256
	retryAttempts = 3
	retryDelay    = 2 * time.Second
)

// retryQueue re-drives activity appends that failed inline. The buffer is
// bounded; when it is full the entry is dropped with a log line rather than
// blocking the caller.
type retryQueue struct {
	repo    repository.ActivityRepository
	logger  *log.Logger
	pending chan activity.Activity
}

func newRetryQueue(repo repository.ActivityRepository, logger *log.Logger) *retryQueue {
	return &retryQueue{
		repo:    repo,
		logger:  logger,
		pending: make(chan activity.Activity, retryBuffer),
	}
}

func (q *retryQueue) Enqueue(act activity.Activity) {
	if q == nil {
		return
	}
	select {
	case q.pending <- act:
	default:
		if q.logger != nil {
			q.logger.Printf("ActivityLog retry dropped | reason=buffer_full type=%s application=%s", act.Type, act.ApplicationID)
		}
	}
}

func (q *retryQueue) Run(ctx context.Context) {
	if q == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case act := <-q.pending:
			q.drive(ctx, act)
		}
	}
}

func (q *retryQueue) drive(ctx context.Context, act activity.Activity) {
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if _, err := q.repo.Append(ctx, act); err == nil {
			return
		} else if q.logger != nil {
			q.logger.Printf("ActivityLog retry failed | attempt=%d type=%s application=%s err=%v", attempt, act.Type, act.ApplicationID, err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
	if q.logger != nil {
		q.logger.Printf("ActivityLog entry lost | type=%s application=%s", act.Type, act.ApplicationID)
	}
}

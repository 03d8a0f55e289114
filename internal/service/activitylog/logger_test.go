package activitylog

import (
	"context"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"zeeknet-ats/internal/domain/activity"
	"zeeknet-ats/internal/domain/pipeline"
	"zeeknet-ats/internal/repository"

	"github.com/google/uuid"
)

type recordingRepo struct {
	mu        sync.Mutex
	appended  []activity.Activity
	appendErr error
}

func (r *recordingRepo) Append(_ context.Context, act activity.Activity) (activity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return activity.Activity{}, r.appendErr
	}
	act.ID = uuid.New()
	act.CreatedAt = time.Now().UTC()
	r.appended = append(r.appended, act)
	return act, nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appended)
}

func (r *recordingRepo) last() activity.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appended[len(r.appended)-1]
}

func (r *recordingRepo) ListByApplication(context.Context, string) ([]activity.Activity, error) {
	return nil, nil
}

func (r *recordingRepo) ListByApplicationPaginated(context.Context, string, int, *repository.Cursor) (repository.ActivityPage, error) {
	return repository.ActivityPage{}, nil
}

func (r *recordingRepo) DeleteByTask(context.Context, uuid.UUID) error { return nil }

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func quietLogger() *log.Logger {
	return log.New(nopWriter{}, "", 0)
}

type recordingInvalidator struct {
	apps []uuid.UUID
}

func (r *recordingInvalidator) InvalidateApplicationFeed(_ context.Context, applicationID uuid.UUID) {
	r.apps = append(r.apps, applicationID)
}

func TestLoggerEachMethodAppendsOnce(t *testing.T) {
	repo := &recordingRepo{}
	l := NewLogger(repo, quietLogger())

	appID := uuid.New()
	actor := Actor{ID: uuid.New(), Name: "Recruiter"}
	when := time.Now().UTC()
	stage := pipeline.StageInterview

	calls := []struct {
		want activity.Type
		fire func()
	}{
		{activity.TypeStageChanged, func() {
			l.StageChanged(context.Background(), StageChangedParams{ApplicationID: appID, Actor: actor, PreviousStage: pipeline.StageApplied, NextStage: stage})
		}},
		{activity.TypeSubStageChanged, func() {
			sub := pipeline.SubStagePhoneScreen
			l.SubStageChanged(context.Background(), StageChangedParams{ApplicationID: appID, Actor: actor, PreviousStage: stage, NextStage: stage, NextSubStage: &sub})
		}},
		{activity.TypeTaskAssigned, func() {
			l.TaskAssigned(context.Background(), TaskEventParams{ApplicationID: appID, Actor: actor, TaskID: uuid.New(), TaskTitle: "t", Deadline: &when, Status: "assigned", Stage: stage})
		}},
		{activity.TypeTaskUpdated, func() {
			l.TaskUpdated(context.Background(), TaskEventParams{ApplicationID: appID, Actor: actor, TaskID: uuid.New(), TaskTitle: "t", Status: "submitted", Stage: stage})
		}},
		{activity.TypeTaskDeleted, func() {
			l.TaskDeleted(context.Background(), TaskEventParams{ApplicationID: appID, Actor: actor, TaskID: uuid.New(), TaskTitle: "t", Status: "assigned", Stage: stage})
		}},
		{activity.TypeInterviewScheduled, func() {
			l.InterviewScheduled(context.Background(), InterviewEventParams{ApplicationID: appID, Actor: actor, InterviewID: uuid.New(), ScheduledAt: &when, Mode: "online", Status: "scheduled", Stage: stage})
		}},
		{activity.TypeInterviewCompleted, func() {
			l.InterviewCompleted(context.Background(), InterviewEventParams{ApplicationID: appID, Actor: actor, InterviewID: uuid.New(), Mode: "online", Status: "completed", Stage: stage})
		}},
		{activity.TypeInterviewCancelled, func() {
			l.InterviewCancelled(context.Background(), InterviewEventParams{ApplicationID: appID, Actor: actor, InterviewID: uuid.New(), Mode: "online", Status: "cancelled", Stage: stage})
		}},
		{activity.TypeOfferSent, func() {
			l.OfferSent(context.Background(), OfferEventParams{ApplicationID: appID, Actor: actor, OfferID: uuid.New(), JobTitle: "SWE", Status: "sent", Stage: stage})
		}},
		{activity.TypeOfferSigned, func() {
			l.OfferSigned(context.Background(), OfferEventParams{ApplicationID: appID, Actor: actor, OfferID: uuid.New(), JobTitle: "SWE", Status: "signed", Stage: stage})
		}},
		{activity.TypeOfferDeclined, func() {
			l.OfferDeclined(context.Background(), OfferEventParams{ApplicationID: appID, Actor: actor, OfferID: uuid.New(), JobTitle: "SWE", Status: "declined", Stage: stage})
		}},
		{activity.TypeCompensationInitiated, func() {
			l.CompensationInitiated(context.Background(), CompensationEventParams{ApplicationID: appID, Actor: actor, Amount: 1000, Currency: "USD", Status: "initiated", Stage: stage})
		}},
		{activity.TypeCompensationUpdated, func() {
			l.CompensationUpdated(context.Background(), CompensationEventParams{ApplicationID: appID, Actor: actor, Amount: 1200, Currency: "USD", Status: "updated", Stage: stage})
		}},
		{activity.TypeCompensationApproved, func() {
			l.CompensationApproved(context.Background(), CompensationEventParams{ApplicationID: appID, Actor: actor, Amount: 1200, Currency: "USD", Status: "approved", Stage: stage})
		}},
		{activity.TypeCompensationMeetingScheduled, func() {
			l.CompensationMeetingScheduled(context.Background(), CompensationEventParams{ApplicationID: appID, Actor: actor, MeetingAt: &when, Status: "scheduled", Stage: stage})
		}},
		{activity.TypeCompensationMeetingStatusUpdated, func() {
			l.CompensationMeetingStatusUpdated(context.Background(), CompensationEventParams{ApplicationID: appID, Actor: actor, Status: "completed", Stage: stage})
		}},
		{activity.TypeCommentAdded, func() {
			l.CommentAdded(context.Background(), CommentParams{ApplicationID: appID, Actor: actor, Comment: "ok", Stage: stage})
		}},
	}

	for i, c := range calls {
		c.fire()
		if got := repo.count(); got != i+1 {
			t.Fatalf("after %s expected %d appends, got %d", c.want, i+1, got)
		}
		if last := repo.last(); last.Type != c.want {
			t.Fatalf("expected type %s, got %s", c.want, last.Type)
		}
	}
}

func TestLoggerAppendFailureIsSwallowed(t *testing.T) {
	repo := &recordingRepo{appendErr: errors.New("db down")}
	l := NewLogger(repo, quietLogger())

	// Must not panic or propagate anything to the caller.
	l.CommentAdded(context.Background(), CommentParams{
		ApplicationID: uuid.New(),
		Actor:         Actor{ID: uuid.New()},
		Comment:       "hello",
		Stage:         pipeline.StageApplied,
	})

	if len(l.retries.pending) != 1 {
		t.Fatalf("failed append must be queued for retry, pending=%d", len(l.retries.pending))
	}
}

func TestLoggerSideChannelsFireOnSuccessOnly(t *testing.T) {
	repo := &recordingRepo{}
	l := NewLogger(repo, quietLogger())

	inv := &recordingInvalidator{}
	var notified []string
	l.SetFeedInvalidator(inv)
	l.SetNotifier(func(_ uuid.UUID, activityType string) {
		notified = append(notified, activityType)
	})

	appID := uuid.New()
	l.CommentAdded(context.Background(), CommentParams{ApplicationID: appID, Actor: Actor{ID: uuid.New()}, Comment: "ok", Stage: pipeline.StageApplied})

	if len(inv.apps) != 1 || inv.apps[0] != appID {
		t.Fatalf("expected one feed invalidation for %s, got %v", appID, inv.apps)
	}
	if len(notified) != 1 || notified[0] != "comment-added" {
		t.Fatalf("expected one comment-added notification, got %v", notified)
	}

	repo.appendErr = errors.New("db down")
	l.CommentAdded(context.Background(), CommentParams{ApplicationID: appID, Actor: Actor{ID: uuid.New()}, Comment: "again", Stage: pipeline.StageApplied})

	if len(inv.apps) != 1 || len(notified) != 1 {
		t.Fatalf("side channels must not fire on failed appends")
	}
}

func TestLoggerEmptyStagePointerNormalized(t *testing.T) {
	repo := &recordingRepo{}
	l := NewLogger(repo, quietLogger())

	l.TaskDeleted(context.Background(), TaskEventParams{
		ApplicationID: uuid.New(),
		Actor:         Actor{ID: uuid.New()},
		TaskID:        uuid.New(),
		TaskTitle:     "t",
		Status:        "assigned",
	})

	if last := repo.last(); last.Stage != nil {
		t.Fatalf("zero stage must be stored as nil, got %v", *last.Stage)
	}
}

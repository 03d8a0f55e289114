package activitylog

import (
	"context"
	"fmt"
	"log"
	"time"

	"zeeknet-ats/internal/domain/activity"
	"zeeknet-ats/internal/domain/pipeline"
	"zeeknet-ats/internal/repository"

	"github.com/google/uuid"
)

// FeedInvalidator drops any cached activity feed for an application after a
// successful append.
type FeedInvalidator interface {
	InvalidateApplicationFeed(ctx context.Context, applicationID uuid.UUID)
}

// Notifier pushes a live "something happened on this application" event.
type Notifier func(applicationID uuid.UUID, activityType string)

// Logger is the single writer of the activity log. Every pipeline-relevant
// event goes through one of its methods so type/metadata shapes cannot drift
// between callers. Append failures never propagate: the audit trail is
// important but secondary to the action that triggered it, so failed appends
// are logged, queued for background retry, and otherwise swallowed.
type Logger struct {
	repo        repository.ActivityRepository
	logger      *log.Logger
	invalidator FeedInvalidator
	notify      Notifier
	retries     *retryQueue
}

func NewLogger(repo repository.ActivityRepository, logger *log.Logger) *Logger {
	if logger == nil {
		logger = log.Default()
	}
	l := &Logger{repo: repo, logger: logger}
	l.retries = newRetryQueue(repo, logger)
	return l
}

// SetFeedInvalidator and SetNotifier attach optional side channels; both are
// fire-and-forget on successful appends.
func (l *Logger) SetFeedInvalidator(inv FeedInvalidator) {
	l.invalidator = inv
}

func (l *Logger) SetNotifier(n Notifier) {
	l.notify = n
}

// Run starts the background retry loop. It returns when ctx is done.
func (l *Logger) Run(ctx context.Context) {
	l.retries.Run(ctx)
}

type Actor struct {
	ID   uuid.UUID
	Name string
}

type StageChangedParams struct {
	ApplicationID    uuid.UUID
	Actor            Actor
	PreviousStage    pipeline.Stage
	PreviousSubStage *pipeline.SubStage
	NextStage        pipeline.Stage
	NextSubStage     *pipeline.SubStage
}

func (l *Logger) StageChanged(ctx context.Context, p StageChangedParams) {
	meta := &activity.StageChangeMetadata{
		PreviousStage: p.PreviousStage.String(),
		NextStage:     p.NextStage.String(),
	}
	if p.PreviousSubStage != nil {
		meta.PreviousSubStage = p.PreviousSubStage.String()
	}
	if p.NextSubStage != nil {
		meta.NextSubStage = p.NextSubStage.String()
	}

	l.record(ctx, activity.Activity{
		ApplicationID:   p.ApplicationID,
		Type:            activity.TypeStageChanged,
		Title:           "Stage changed",
		Description:     fmt.Sprintf("Application moved from %s to %s", p.PreviousStage, p.NextStage),
		PerformedBy:     p.Actor.ID,
		PerformedByName: p.Actor.Name,
		Stage:           &p.NextStage,
		SubStage:        p.NextSubStage,
		Metadata:        meta,
	})
}

func (l *Logger) SubStageChanged(ctx context.Context, p StageChangedParams) {
	meta := &activity.StageChangeMetadata{
		PreviousStage: p.PreviousStage.String(),
		NextStage:     p.NextStage.String(),
	}
	if p.PreviousSubStage != nil {
		meta.PreviousSubStage = p.PreviousSubStage.String()
	}
	desc := "Sub-stage updated"
	if p.NextSubStage != nil {
		meta.NextSubStage = p.NextSubStage.String()
		desc = fmt.Sprintf("Sub-stage updated to %s", p.NextSubStage)
	}

	l.record(ctx, activity.Activity{
		ApplicationID:   p.ApplicationID,
		Type:            activity.TypeSubStageChanged,
		Title:           "Sub-stage changed",
		Description:     desc,
		PerformedBy:     p.Actor.ID,
		PerformedByName: p.Actor.Name,
		Stage:           &p.NextStage,
		SubStage:        p.NextSubStage,
		Metadata:        meta,
	})
}

type TaskEventParams struct {
	ApplicationID uuid.UUID
	Actor         Actor
	TaskID        uuid.UUID
	TaskTitle     string
	Deadline      *time.Time
	Status        string
	Rating        *int
	Stage         pipeline.Stage
	SubStage      *pipeline.SubStage
}

func (l *Logger) taskEvent(ctx context.Context, t activity.Type, title, desc string, p TaskEventParams) {
	l.record(ctx, activity.Activity{
		ApplicationID:   p.ApplicationID,
		Type:            t,
		Title:           title,
		Description:     desc,
		PerformedBy:     p.Actor.ID,
		PerformedByName: p.Actor.Name,
		Stage:           &p.Stage,
		SubStage:        p.SubStage,
		Metadata: &activity.TaskMetadata{
			TaskID:   p.TaskID.String(),
			Title:    p.TaskTitle,
			Deadline: p.Deadline,
			Status:   p.Status,
			Rating:   p.Rating,
		},
	})
}

func (l *Logger) TaskAssigned(ctx context.Context, p TaskEventParams) {
	l.taskEvent(ctx, activity.TypeTaskAssigned, "Technical task assigned",
		fmt.Sprintf("Task %q assigned", p.TaskTitle), p)
}

func (l *Logger) TaskUpdated(ctx context.Context, p TaskEventParams) {
	l.taskEvent(ctx, activity.TypeTaskUpdated, "Technical task updated",
		fmt.Sprintf("Task %q updated", p.TaskTitle), p)
}

func (l *Logger) TaskDeleted(ctx context.Context, p TaskEventParams) {
	l.taskEvent(ctx, activity.TypeTaskDeleted, "Technical task deleted",
		fmt.Sprintf("Task %q deleted", p.TaskTitle), p)
}

type InterviewEventParams struct {
	ApplicationID uuid.UUID
	Actor         Actor
	InterviewID   uuid.UUID
	ScheduledAt   *time.Time
	Mode          string
	Status        string
	Stage         pipeline.Stage
	SubStage      *pipeline.SubStage
}

func (l *Logger) interviewEvent(ctx context.Context, t activity.Type, title, desc string, p InterviewEventParams) {
	l.record(ctx, activity.Activity{
		ApplicationID:   p.ApplicationID,
		Type:            t,
		Title:           title,
		Description:     desc,
		PerformedBy:     p.Actor.ID,
		PerformedByName: p.Actor.Name,
		Stage:           &p.Stage,
		SubStage:        p.SubStage,
		Metadata: &activity.InterviewMetadata{
			InterviewID: p.InterviewID.String(),
			ScheduledAt: p.ScheduledAt,
			Mode:        p.Mode,
			Status:      p.Status,
		},
	})
}

func (l *Logger) InterviewScheduled(ctx context.Context, p InterviewEventParams) {
	desc := "Interview scheduled"
	if p.ScheduledAt != nil {
		desc = fmt.Sprintf("Interview scheduled for %s", p.ScheduledAt.Format(time.RFC3339))
	}
	l.interviewEvent(ctx, activity.TypeInterviewScheduled, "Interview scheduled", desc, p)
}

func (l *Logger) InterviewCompleted(ctx context.Context, p InterviewEventParams) {
	l.interviewEvent(ctx, activity.TypeInterviewCompleted, "Interview completed", "Interview marked as completed", p)
}

func (l *Logger) InterviewCancelled(ctx context.Context, p InterviewEventParams) {
	l.interviewEvent(ctx, activity.TypeInterviewCancelled, "Interview cancelled", "Interview was cancelled", p)
}

type OfferEventParams struct {
	ApplicationID uuid.UUID
	Actor         Actor
	OfferID       uuid.UUID
	JobTitle      string
	Status        string
	Stage         pipeline.Stage
	SubStage      *pipeline.SubStage
}

func (l *Logger) offerEvent(ctx context.Context, t activity.Type, title, desc string, p OfferEventParams) {
	l.record(ctx, activity.Activity{
		ApplicationID:   p.ApplicationID,
		Type:            t,
		Title:           title,
		Description:     desc,
		PerformedBy:     p.Actor.ID,
		PerformedByName: p.Actor.Name,
		Stage:           &p.Stage,
		SubStage:        p.SubStage,
		Metadata: &activity.OfferMetadata{
			OfferID:  p.OfferID.String(),
			JobTitle: p.JobTitle,
			Status:   p.Status,
		},
	})
}

func (l *Logger) OfferSent(ctx context.Context, p OfferEventParams) {
	l.offerEvent(ctx, activity.TypeOfferSent, "Offer sent",
		fmt.Sprintf("Offer sent for %s", p.JobTitle), p)
}

func (l *Logger) OfferSigned(ctx context.Context, p OfferEventParams) {
	l.offerEvent(ctx, activity.TypeOfferSigned, "Offer signed",
		fmt.Sprintf("Offer for %s was signed", p.JobTitle), p)
}

func (l *Logger) OfferDeclined(ctx context.Context, p OfferEventParams) {
	l.offerEvent(ctx, activity.TypeOfferDeclined, "Offer declined",
		fmt.Sprintf("Offer for %s was declined", p.JobTitle), p)
}

type CompensationEventParams struct {
	ApplicationID uuid.UUID
	Actor         Actor
	Amount        int64
	Currency      string
	Status        string
	MeetingAt     *time.Time
	MeetingLink   string
	Stage         pipeline.Stage
	SubStage      *pipeline.SubStage
}

func (l *Logger) compensationEvent(ctx context.Context, t activity.Type, title, desc string, p CompensationEventParams) {
	l.record(ctx, activity.Activity{
		ApplicationID:   p.ApplicationID,
		Type:            t,
		Title:           title,
		Description:     desc,
		PerformedBy:     p.Actor.ID,
		PerformedByName: p.Actor.Name,
		Stage:           &p.Stage,
		SubStage:        p.SubStage,
		Metadata: &activity.CompensationMetadata{
			Amount:      p.Amount,
			Currency:    p.Currency,
			Status:      p.Status,
			MeetingAt:   p.MeetingAt,
			MeetingLink: p.MeetingLink,
		},
	})
}

func (l *Logger) CompensationInitiated(ctx context.Context, p CompensationEventParams) {
	l.compensationEvent(ctx, activity.TypeCompensationInitiated, "Compensation initiated", "Compensation discussion initiated", p)
}

func (l *Logger) CompensationUpdated(ctx context.Context, p CompensationEventParams) {
	l.compensationEvent(ctx, activity.TypeCompensationUpdated, "Compensation updated", "Compensation details updated", p)
}

func (l *Logger) CompensationApproved(ctx context.Context, p CompensationEventParams) {
	l.compensationEvent(ctx, activity.TypeCompensationApproved, "Compensation approved", "Compensation was approved", p)
}

func (l *Logger) CompensationMeetingScheduled(ctx context.Context, p CompensationEventParams) {
	desc := "Compensation meeting scheduled"
	if p.MeetingAt != nil {
		desc = fmt.Sprintf("Compensation meeting scheduled for %s", p.MeetingAt.Format(time.RFC3339))
	}
	l.compensationEvent(ctx, activity.TypeCompensationMeetingScheduled, "Compensation meeting scheduled", desc, p)
}

func (l *Logger) CompensationMeetingStatusUpdated(ctx context.Context, p CompensationEventParams) {
	l.compensationEvent(ctx, activity.TypeCompensationMeetingStatusUpdated, "Compensation meeting status updated",
		fmt.Sprintf("Compensation meeting status changed to %s", p.Status), p)
}

type CommentParams struct {
	ApplicationID uuid.UUID
	Actor         Actor
	Comment       string
	Stage         pipeline.Stage
	SubStage      *pipeline.SubStage
}

func (l *Logger) CommentAdded(ctx context.Context, p CommentParams) {
	l.record(ctx, activity.Activity{
		ApplicationID:   p.ApplicationID,
		Type:            activity.TypeCommentAdded,
		Title:           "Comment added",
		Description:     p.Comment,
		PerformedBy:     p.Actor.ID,
		PerformedByName: p.Actor.Name,
		Stage:           &p.Stage,
		SubStage:        p.SubStage,
		Metadata:        &activity.CommentMetadata{Comment: p.Comment},
	})
}

func (l *Logger) record(ctx context.Context, act activity.Activity) {
	if l == nil || l.repo == nil {
		return
	}

	if act.Stage != nil && *act.Stage == "" {
		act.Stage = nil
	}
	if act.SubStage != nil && *act.SubStage == "" {
		act.SubStage = nil
	}

	stored, err := l.repo.Append(ctx, act)
	if err != nil {
		l.logger.Printf("ActivityLog append failed | type=%s application=%s err=%v", act.Type, act.ApplicationID, err)
		l.retries.Enqueue(act)
		return
	}

	if l.invalidator != nil {
		l.invalidator.InvalidateApplicationFeed(ctx, stored.ApplicationID)
	}
	if l.notify != nil {
		l.notify(stored.ApplicationID, stored.Type.String())
	}
}

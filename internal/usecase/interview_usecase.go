package usecase

import (
	"context"
	"errors"
	"time"

	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/service/activitylog"

	"github.com/google/uuid"
)

const (
	InterviewStatusScheduled = "scheduled"
	InterviewStatusCompleted = "completed"
	InterviewStatusCancelled = "cancelled"

	InterviewModeOnline  = "online"
	InterviewModeOffline = "offline"
)

type ScheduleInterviewInput struct {
	ApplicationID uuid.UUID
	ScheduledAt   time.Time
	Mode          string
	MeetingLink   string
	Actor         activitylog.Actor
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, in ScheduleInterviewInput) (repository.Interview, error)
	UpdateStatus(ctx context.Context, interviewID uuid.UUID, status string, actor activitylog.Actor) (repository.Interview, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]repository.Interview, error)
}

type InterviewService struct {
	interviews repository.InterviewRepository
	apps       repository.ApplicationRepository
	log        *activitylog.Logger
}

func NewInterviewUsecase(interviews repository.InterviewRepository, apps repository.ApplicationRepository, log *activitylog.Logger) *InterviewService {
	return &InterviewService{interviews: interviews, apps: apps, log: log}
}

func (u *InterviewService) Schedule(ctx context.Context, in ScheduleInterviewInput) (repository.Interview, error) {
	if in.ApplicationID == uuid.Nil || in.ScheduledAt.IsZero() {
		return repository.Interview{}, ErrInvalidInput
	}
	if in.Mode != InterviewModeOnline && in.Mode != InterviewModeOffline {
		return repository.Interview{}, ErrInvalidInput
	}

	app, err := u.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Interview{}, ErrApplicationNotFound
		}
		return repository.Interview{}, ErrInternal
	}

	iv := repository.Interview{
		ApplicationID: app.ID,
		ScheduledAt:   in.ScheduledAt,
		Mode:          in.Mode,
		Status:        InterviewStatusScheduled,
	}
	if in.MeetingLink != "" {
		link := in.MeetingLink
		iv.MeetingLink = &link
	}

	created, err := u.interviews.Create(ctx, iv)
	if err != nil {
		return repository.Interview{}, ErrInternal
	}

	scheduledAt := created.ScheduledAt
	u.log.InterviewScheduled(ctx, activitylog.InterviewEventParams{
		ApplicationID: app.ID,
		Actor:         in.Actor,
		InterviewID:   created.ID,
		ScheduledAt:   &scheduledAt,
		Mode:          created.Mode,
		Status:        created.Status,
		Stage:         app.Stage,
		SubStage:      app.SubStage,
	})

	return created, nil
}

func (u *InterviewService) UpdateStatus(ctx context.Context, interviewID uuid.UUID, status string, actor activitylog.Actor) (repository.Interview, error) {
	if interviewID == uuid.Nil {
		return repository.Interview{}, ErrInvalidInput
	}
	if status != InterviewStatusCompleted && status != InterviewStatusCancelled {
		return repository.Interview{}, ErrInvalidInput
	}

	iv, err := u.interviews.FindByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrInterviewNotFound) {
			return repository.Interview{}, ErrInterviewNotFound
		}
		return repository.Interview{}, ErrInternal
	}
	if iv.Status != InterviewStatusScheduled {
		return repository.Interview{}, ErrInvalidInput
	}

	updated, err := u.interviews.UpdateStatus(ctx, interviewID, status)
	if err != nil {
		if errors.Is(err, repository.ErrInterviewNotFound) {
			return repository.Interview{}, ErrInterviewNotFound
		}
		return repository.Interview{}, ErrInternal
	}

	params := activitylog.InterviewEventParams{
		ApplicationID: updated.ApplicationID,
		Actor:         actor,
		InterviewID:   updated.ID,
		Mode:          updated.Mode,
		Status:        updated.Status,
	}
	if app, err := u.apps.FindByID(ctx, updated.ApplicationID); err == nil {
		params.Stage = app.Stage
		params.SubStage = app.SubStage
	}
	if status == InterviewStatusCompleted {
		u.log.InterviewCompleted(ctx, params)
	} else {
		u.log.InterviewCancelled(ctx, params)
	}

	return updated, nil
}

func (u *InterviewService) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]repository.Interview, error) {
	if applicationID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	out, err := u.interviews.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

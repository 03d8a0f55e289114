package usecase

import (
	"context"
	"errors"

	"zeeknet-ats/internal/domain/application"
	"zeeknet-ats/internal/domain/pipeline"
	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/service/activitylog"

	"github.com/google/uuid"
)

type MoveStageInput struct {
	ApplicationID uuid.UUID
	NextStage     pipeline.Stage
	SubStage      *pipeline.SubStage
	Actor         activitylog.Actor
}

type UpdateSubStageInput struct {
	ApplicationID uuid.UUID
	SubStage      pipeline.SubStage
	Actor         activitylog.Actor
}

type AddCommentInput struct {
	ApplicationID uuid.UUID
	Comment       string
	Actor         activitylog.Actor
}

// PipelineUsecase is the stage transition engine: the only path permitted to
// change an application's (stage, subStage). Every successful transition is
// mirrored by exactly one activity record.
type PipelineUsecase interface {
	MoveStage(ctx context.Context, in MoveStageInput) (application.Application, error)
	UpdateSubStage(ctx context.Context, in UpdateSubStageInput) (application.Application, error)
	AddComment(ctx context.Context, in AddCommentInput) error
}

type Pipeline struct {
	apps repository.ApplicationRepository
	jobs repository.JobPostingRepository
	log  *activitylog.Logger
}

func NewPipelineUsecase(apps repository.ApplicationRepository, jobs repository.JobPostingRepository, log *activitylog.Logger) *Pipeline {
	return &Pipeline{apps: apps, jobs: jobs, log: log}
}

func (u *Pipeline) MoveStage(ctx context.Context, in MoveStageInput) (application.Application, error) {
	if in.ApplicationID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}
	if !in.NextStage.Valid() {
		return application.Application{}, ErrInvalidStage
	}

	app, err := u.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	enabled, err := u.jobs.GetEnabledStages(ctx, app.JobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if !pipeline.StageEnabled(enabled, in.NextStage) {
		return application.Application{}, ErrStageNotEnabled
	}

	if in.SubStage != nil && !pipeline.SubStageValidFor(in.NextStage, *in.SubStage) {
		return application.Application{}, ErrInvalidSubStage
	}

	previousStage := app.Stage
	previousSubStage := app.SubStage

	updated, err := u.apps.UpdateStage(ctx, app.ID, in.NextStage, in.SubStage, app.Version)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationConflict):
			return application.Application{}, ErrConflict
		case errors.Is(err, repository.ErrApplicationNotFound):
			return application.Application{}, ErrApplicationNotFound
		default:
			return application.Application{}, ErrInternal
		}
	}

	params := activitylog.StageChangedParams{
		ApplicationID:    updated.ID,
		Actor:            in.Actor,
		PreviousStage:    previousStage,
		PreviousSubStage: previousSubStage,
		NextStage:        updated.Stage,
		NextSubStage:     updated.SubStage,
	}
	if previousStage == updated.Stage {
		u.log.SubStageChanged(ctx, params)
	} else {
		u.log.StageChanged(ctx, params)
	}

	return updated, nil
}

func (u *Pipeline) UpdateSubStage(ctx context.Context, in UpdateSubStageInput) (application.Application, error) {
	if in.ApplicationID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	app, err := u.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	// Validated against the current stage, not a new one.
	if !pipeline.SubStageValidFor(app.Stage, in.SubStage) {
		return application.Application{}, ErrInvalidSubStage
	}

	previousSubStage := app.SubStage
	sub := in.SubStage

	updated, err := u.apps.UpdateStage(ctx, app.ID, app.Stage, &sub, app.Version)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationConflict):
			return application.Application{}, ErrConflict
		case errors.Is(err, repository.ErrApplicationNotFound):
			return application.Application{}, ErrApplicationNotFound
		default:
			return application.Application{}, ErrInternal
		}
	}

	u.log.SubStageChanged(ctx, activitylog.StageChangedParams{
		ApplicationID:    updated.ID,
		Actor:            in.Actor,
		PreviousStage:    app.Stage,
		PreviousSubStage: previousSubStage,
		NextStage:        updated.Stage,
		NextSubStage:     updated.SubStage,
	})

	return updated, nil
}

func (u *Pipeline) AddComment(ctx context.Context, in AddCommentInput) error {
	if in.ApplicationID == uuid.Nil || in.Comment == "" {
		return ErrInvalidInput
	}

	app, err := u.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}

	u.log.CommentAdded(ctx, activitylog.CommentParams{
		ApplicationID: app.ID,
		Actor:         in.Actor,
		Comment:       in.Comment,
		Stage:         app.Stage,
		SubStage:      app.SubStage,
	})
	return nil
}

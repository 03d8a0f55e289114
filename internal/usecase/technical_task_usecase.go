package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"zeeknet-ats/internal/domain/task"
	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/service/activitylog"

	"github.com/google/uuid"
)

type AssignTaskInput struct {
	ApplicationID uuid.UUID
	Title         string
	Description   string
	Deadline      time.Time
	Document      *DocumentUpload
	Actor         activitylog.Actor
}

type UpdateTaskInput struct {
	Status   *task.Status
	Rating   *int
	Feedback *string
	Document *DocumentUpload
}

// TaskItem is a task with its stored document keys resolved to time-limited
// retrieval links.
type TaskItem struct {
	Task          task.Task
	DocumentURL   *string
	SubmissionURL *string
}

// TechnicalTaskUsecase is the hiring-side task workflow: assignment, review
// progression, and deletion. Stage moves stay with the pipeline engine; these
// operations mutate state within a stage.
type TechnicalTaskUsecase interface {
	Assign(ctx context.Context, in AssignTaskInput) (TaskItem, error)
	Update(ctx context.Context, taskID uuid.UUID, in UpdateTaskInput, actor activitylog.Actor) (TaskItem, error)
	Delete(ctx context.Context, taskID uuid.UUID, actor activitylog.Actor) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]TaskItem, error)
}

type TechnicalTask struct {
	tasks      repository.TaskRepository
	apps       repository.ApplicationRepository
	activities repository.ActivityRepository
	documents  DocumentStore
	log        *activitylog.Logger
}

func NewTechnicalTaskUsecase(
	tasks repository.TaskRepository,
	apps repository.ApplicationRepository,
	activities repository.ActivityRepository,
	documents DocumentStore,
	log *activitylog.Logger,
) *TechnicalTask {
	return &TechnicalTask{tasks: tasks, apps: apps, activities: activities, documents: documents, log: log}
}

func (u *TechnicalTask) Assign(ctx context.Context, in AssignTaskInput) (TaskItem, error) {
	if in.ApplicationID == uuid.Nil || strings.TrimSpace(in.Title) == "" || in.Deadline.IsZero() {
		return TaskItem{}, ErrInvalidInput
	}

	app, err := u.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return TaskItem{}, ErrApplicationNotFound
		}
		return TaskItem{}, ErrInternal
	}

	t := task.Task{
		ApplicationID: app.ID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Deadline:      in.Deadline,
		Status:        task.StatusAssigned,
	}

	if in.Document != nil {
		key, err := u.documents.UploadDocument(ctx, in.Document.Content, in.Document.Filename, in.Document.ContentType)
		if err != nil {
			return TaskItem{}, ErrInternal
		}
		t.DocumentKey = &key
		filename := in.Document.Filename
		t.DocumentFilename = &filename
	}

	created, err := u.tasks.Create(ctx, t)
	if err != nil {
		return TaskItem{}, ErrInternal
	}

	deadline := created.Deadline
	// The activity carries the application's stage as of assignment time.
	u.log.TaskAssigned(ctx, activitylog.TaskEventParams{
		ApplicationID: app.ID,
		Actor:         in.Actor,
		TaskID:        created.ID,
		TaskTitle:     created.Title,
		Deadline:      &deadline,
		Status:        created.Status.String(),
		Stage:         app.Stage,
		SubStage:      app.SubStage,
	})

	return u.resolve(ctx, created), nil
}

func (u *TechnicalTask) Update(ctx context.Context, taskID uuid.UUID, in UpdateTaskInput, actor activitylog.Actor) (TaskItem, error) {
	if taskID == uuid.Nil {
		return TaskItem{}, ErrInvalidInput
	}

	t, err := u.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskItem{}, ErrTaskNotFound
		}
		return TaskItem{}, ErrInternal
	}

	if in.Status != nil {
		if !t.Status.CanTransitionTo(*in.Status) {
			return TaskItem{}, ErrInvalidTaskTransition
		}
		t.Status = *in.Status
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return TaskItem{}, ErrInvalidInput
		}
		t.Rating = in.Rating
	}
	if in.Feedback != nil {
		t.Feedback = in.Feedback
	}
	if in.Document != nil {
		key, err := u.documents.UploadDocument(ctx, in.Document.Content, in.Document.Filename, in.Document.ContentType)
		if err != nil {
			return TaskItem{}, ErrInternal
		}
		t.DocumentKey = &key
		filename := in.Document.Filename
		t.DocumentFilename = &filename
	}

	updated, err := u.tasks.Update(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskItem{}, ErrTaskNotFound
		}
		return TaskItem{}, ErrInternal
	}

	params := activitylog.TaskEventParams{
		ApplicationID: updated.ApplicationID,
		Actor:         actor,
		TaskID:        updated.ID,
		TaskTitle:     updated.Title,
		Status:        updated.Status.String(),
		Rating:        updated.Rating,
	}
	if app, err := u.apps.FindByID(ctx, updated.ApplicationID); err == nil {
		params.Stage = app.Stage
		params.SubStage = app.SubStage
	}
	u.log.TaskUpdated(ctx, params)

	return u.resolve(ctx, updated), nil
}

func (u *TechnicalTask) Delete(ctx context.Context, taskID uuid.UUID, actor activitylog.Actor) error {
	if taskID == uuid.Nil {
		return ErrInvalidInput
	}

	t, err := u.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return ErrInternal
	}

	if err := u.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return ErrInternal
	}

	// The task record is gone; its task-scoped audit rows go with it, and a
	// single synthetic task-deleted entry keyed to the application preserves
	// the trail. Cleanup is best effort once the task row is deleted; a
	// failure here must not block the tombstone entry.
	_ = u.activities.DeleteByTask(ctx, taskID)

	params := activitylog.TaskEventParams{
		ApplicationID: t.ApplicationID,
		Actor:         actor,
		TaskID:        t.ID,
		TaskTitle:     t.Title,
		Status:        t.Status.String(),
	}
	if app, err := u.apps.FindByID(ctx, t.ApplicationID); err == nil {
		params.Stage = app.Stage
		params.SubStage = app.SubStage
	}
	u.log.TaskDeleted(ctx, params)

	return nil
}

func (u *TechnicalTask) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]TaskItem, error) {
	if applicationID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	tasks, err := u.tasks.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, u.resolve(ctx, t))
	}
	return out, nil
}

func (u *TechnicalTask) resolve(ctx context.Context, t task.Task) TaskItem {
	return resolveTaskLinks(ctx, u.documents, t)
}

func resolveTaskLinks(ctx context.Context, documents DocumentStore, t task.Task) TaskItem {
	item := TaskItem{Task: t}
	if documents == nil {
		return item
	}
	if t.DocumentKey != nil {
		if url, err := documents.SignedURL(ctx, *t.DocumentKey); err == nil {
			item.DocumentURL = &url
		}
	}
	if t.SubmissionKey != nil {
		if url, err := documents.SignedURL(ctx, *t.SubmissionKey); err == nil {
			item.SubmissionURL = &url
		}
	}
	return item
}

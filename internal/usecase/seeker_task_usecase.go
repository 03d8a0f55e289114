package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"zeeknet-ats/internal/domain/task"
	"zeeknet-ats/internal/repository"

	"github.com/google/uuid"
)

type SubmitTaskInput struct {
	Submission     *DocumentUpload
	SubmissionLink string
	SubmissionNote string
}

// SeekerTaskUsecase is the candidate-facing side of the task lifecycle:
// submitting work and viewing assigned tasks. Submission does not emit an
// activity; the hiring-side paths own the audit trail.
type SeekerTaskUsecase interface {
	Submit(ctx context.Context, userID, applicationID, taskID uuid.UUID, in SubmitTaskInput) (TaskItem, error)
	ListForSeeker(ctx context.Context, userID, applicationID uuid.UUID) ([]TaskItem, error)
}

type SeekerTask struct {
	tasks     repository.TaskRepository
	apps      repository.ApplicationRepository
	documents DocumentStore
	now       func() time.Time
}

func NewSeekerTaskUsecase(tasks repository.TaskRepository, apps repository.ApplicationRepository, documents DocumentStore) *SeekerTask {
	return &SeekerTask{tasks: tasks, apps: apps, documents: documents, now: time.Now}
}

func (u *SeekerTask) Submit(ctx context.Context, userID, applicationID, taskID uuid.UUID, in SubmitTaskInput) (TaskItem, error) {
	if userID == uuid.Nil || applicationID == uuid.Nil || taskID == uuid.Nil {
		return TaskItem{}, ErrInvalidInput
	}

	link := strings.TrimSpace(in.SubmissionLink)
	if in.Submission == nil && link == "" {
		return TaskItem{}, ErrMissingSubmission
	}

	app, err := u.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return TaskItem{}, ErrApplicationNotFound
		}
		return TaskItem{}, ErrInternal
	}
	if app.SeekerID != userID {
		return TaskItem{}, ErrForbidden
	}

	t, err := u.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskItem{}, ErrTaskNotFound
		}
		return TaskItem{}, ErrInternal
	}
	if t.ApplicationID != applicationID {
		return TaskItem{}, ErrTaskApplicationMismatch
	}
	if t.Status.Terminal() {
		return TaskItem{}, ErrInvalidTaskTransition
	}

	if in.Submission != nil {
		key, err := u.documents.UploadDocument(ctx, in.Submission.Content, in.Submission.Filename, in.Submission.ContentType)
		if err != nil {
			return TaskItem{}, ErrInternal
		}
		t.SubmissionKey = &key
		filename := in.Submission.Filename
		t.SubmissionFilename = &filename
	}
	if link != "" {
		t.SubmissionLink = &link
	}
	if note := strings.TrimSpace(in.SubmissionNote); note != "" {
		t.SubmissionNote = &note
	}

	// Re-submission is permitted and overwrites SubmittedAt.
	submittedAt := u.now().UTC()
	t.SubmittedAt = &submittedAt
	t.Status = task.StatusSubmitted

	updated, err := u.tasks.Update(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskItem{}, ErrTaskNotFound
		}
		return TaskItem{}, ErrInternal
	}

	return resolveTaskLinks(ctx, u.documents, updated), nil
}

func (u *SeekerTask) ListForSeeker(ctx context.Context, userID, applicationID uuid.UUID) ([]TaskItem, error) {
	if userID == uuid.Nil || applicationID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	app, err := u.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, ErrInternal
	}
	if app.SeekerID != userID {
		return nil, ErrForbidden
	}

	tasks, err := u.tasks.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, resolveTaskLinks(ctx, u.documents, t))
	}
	return out, nil
}

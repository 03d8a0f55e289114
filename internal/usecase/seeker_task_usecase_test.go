package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"zeeknet-ats/internal/domain/pipeline"
	"zeeknet-ats/internal/domain/task"

	"github.com/google/uuid"
)

func TestSeekerSubmit_MissingSubmission(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	uc := NewSeekerTaskUsecase(newMockTaskRepo(), apps, mockDocStore{})

	_, err := uc.Submit(context.Background(), apps.app.SeekerID, apps.app.ID, uuid.New(), SubmitTaskInput{
		SubmissionLink: "   ",
	})
	if !errors.Is(err, ErrMissingSubmission) {
		t.Fatalf("expected ErrMissingSubmission, got %v", err)
	}
}

func TestSeekerSubmit_Forbidden(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	uc := NewSeekerTaskUsecase(newMockTaskRepo(), apps, mockDocStore{})

	_, err := uc.Submit(context.Background(), uuid.New(), apps.app.ID, uuid.New(), SubmitTaskInput{
		SubmissionLink: "https://github.com/candidate/solution",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSeekerSubmit_TaskApplicationMismatch(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	tasks := newMockTaskRepo()
	uc := NewSeekerTaskUsecase(tasks, apps, mockDocStore{})

	other, _ := tasks.Create(context.Background(), task.Task{
		ApplicationID: uuid.New(),
		Title:         "someone else's task",
		Deadline:      time.Now().Add(time.Hour),
		Status:        task.StatusAssigned,
	})

	_, err := uc.Submit(context.Background(), apps.app.SeekerID, apps.app.ID, other.ID, SubmitTaskInput{
		SubmissionLink: "https://github.com/candidate/solution",
	})
	if !errors.Is(err, ErrTaskApplicationMismatch) {
		t.Fatalf("expected ErrTaskApplicationMismatch, got %v", err)
	}
}

func TestSeekerSubmit_TerminalTask(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	tasks := newMockTaskRepo()
	uc := NewSeekerTaskUsecase(tasks, apps, mockDocStore{})

	done, _ := tasks.Create(context.Background(), task.Task{
		ApplicationID: apps.app.ID,
		Title:         "done task",
		Deadline:      time.Now().Add(time.Hour),
		Status:        task.StatusCompleted,
	})

	_, err := uc.Submit(context.Background(), apps.app.SeekerID, apps.app.ID, done.ID, SubmitTaskInput{
		SubmissionLink: "https://github.com/candidate/solution",
	})
	if !errors.Is(err, ErrInvalidTaskTransition) {
		t.Fatalf("expected ErrInvalidTaskTransition, got %v", err)
	}
}

func TestSeekerSubmit_Success(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	tasks := newMockTaskRepo()
	uc := NewSeekerTaskUsecase(tasks, apps, mockDocStore{})

	submittedAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return submittedAt }

	assigned, _ := tasks.Create(context.Background(), task.Task{
		ApplicationID: apps.app.ID,
		Title:         "rate limiter",
		Deadline:      time.Now().Add(time.Hour),
		Status:        task.StatusAssigned,
	})

	item, err := uc.Submit(context.Background(), apps.app.SeekerID, apps.app.ID, assigned.ID, SubmitTaskInput{
		Submission: &DocumentUpload{
			Content:     []byte("zip bytes"),
			Filename:    "solution.zip",
			ContentType: "application/zip",
		},
		SubmissionNote: "see README",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if item.Task.Status != task.StatusSubmitted {
		t.Fatalf("expected submitted, got %s", item.Task.Status)
	}
	if item.Task.SubmittedAt == nil || !item.Task.SubmittedAt.Equal(submittedAt) {
		t.Fatalf("unexpected submitted_at: %v", item.Task.SubmittedAt)
	}
	if item.SubmissionURL == nil || *item.SubmissionURL != "https://storage.test/tasks/solution.zip" {
		t.Fatalf("unexpected submission url: %v", item.SubmissionURL)
	}
}

func TestSeekerSubmit_ResubmissionOverwritesSubmittedAt(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	tasks := newMockTaskRepo()
	uc := NewSeekerTaskUsecase(tasks, apps, mockDocStore{})

	assigned, _ := tasks.Create(context.Background(), task.Task{
		ApplicationID: apps.app.ID,
		Title:         "rate limiter",
		Deadline:      time.Now().Add(time.Hour),
		Status:        task.StatusAssigned,
	})

	first := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return first }
	if _, err := uc.Submit(context.Background(), apps.app.SeekerID, apps.app.ID, assigned.ID, SubmitTaskInput{
		SubmissionLink: "https://github.com/candidate/v1",
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := first.Add(2 * time.Hour)
	uc.now = func() time.Time { return second }
	item, err := uc.Submit(context.Background(), apps.app.SeekerID, apps.app.ID, assigned.ID, SubmitTaskInput{
		SubmissionLink: "https://github.com/candidate/v2",
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if item.Task.SubmittedAt == nil || !item.Task.SubmittedAt.Equal(second) {
		t.Fatalf("re-submission must overwrite submitted_at, got %v", item.Task.SubmittedAt)
	}
	if item.Task.SubmissionLink == nil || *item.Task.SubmissionLink != "https://github.com/candidate/v2" {
		t.Fatalf("re-submission must overwrite the link, got %v", item.Task.SubmissionLink)
	}
}

func TestSeekerSubmit_UnderReviewTaskReturnsToSubmitted(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	tasks := newMockTaskRepo()
	uc := NewSeekerTaskUsecase(tasks, apps, mockDocStore{})

	reviewing, _ := tasks.Create(context.Background(), task.Task{
		ApplicationID: apps.app.ID,
		Title:         "rate limiter",
		Deadline:      time.Now().Add(time.Hour),
		Status:        task.StatusUnderReview,
	})

	// Re-submission during review is allowed and pulls the task back to
	// submitted; only terminal tasks refuse.
	item, err := uc.Submit(context.Background(), apps.app.SeekerID, apps.app.ID, reviewing.ID, SubmitTaskInput{
		SubmissionLink: "https://github.com/candidate/v2",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if item.Task.Status != task.StatusSubmitted {
		t.Fatalf("expected submitted, got %s", item.Task.Status)
	}
}

func TestSeekerListForSeeker_Forbidden(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageTechnicalTask, nil)}
	uc := NewSeekerTaskUsecase(newMockTaskRepo(), apps, mockDocStore{})

	if _, err := uc.ListForSeeker(context.Background(), uuid.New(), apps.app.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"zeeknet-ats/internal/domain/activity"
	"zeeknet-ats/internal/domain/pipeline"
	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/service/activitylog"

	"github.com/google/uuid"
)

type mockInterviewRepo struct {
	interviews map[uuid.UUID]repository.Interview
}

func newMockInterviewRepo() *mockInterviewRepo {
	return &mockInterviewRepo{interviews: map[uuid.UUID]repository.Interview{}}
}

func (m *mockInterviewRepo) Create(_ context.Context, iv repository.Interview) (repository.Interview, error) {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	iv.CreatedAt = time.Now().UTC()
	m.interviews[iv.ID] = iv
	return iv, nil
}

func (m *mockInterviewRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Interview, error) {
	iv, ok := m.interviews[id]
	if !ok {
		return repository.Interview{}, repository.ErrInterviewNotFound
	}
	return iv, nil
}

func (m *mockInterviewRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (repository.Interview, error) {
	iv, ok := m.interviews[id]
	if !ok {
		return repository.Interview{}, repository.ErrInterviewNotFound
	}
	iv.Status = status
	m.interviews[id] = iv
	return iv, nil
}

func (m *mockInterviewRepo) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]repository.Interview, error) {
	var out []repository.Interview
	for _, iv := range m.interviews {
		if iv.ApplicationID == applicationID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func TestInterviewSchedule_InvalidMode(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageInterview, nil)}
	uc := NewInterviewUsecase(newMockInterviewRepo(), apps, activitylog.NewLogger(&mockActivityRepo{}, testLogger()))

	_, err := uc.Schedule(context.Background(), ScheduleInterviewInput{
		ApplicationID: apps.app.ID,
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		Mode:          "in_person",
		Actor:         testActor(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInterviewSchedule_Success(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageInterview, nil)}
	acts := &mockActivityRepo{}
	uc := NewInterviewUsecase(newMockInterviewRepo(), apps, activitylog.NewLogger(acts, testLogger()))

	created, err := uc.Schedule(context.Background(), ScheduleInterviewInput{
		ApplicationID: apps.app.ID,
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		Mode:          InterviewModeOnline,
		MeetingLink:   "https://meet.test/xyz",
		Actor:         testActor(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != InterviewStatusScheduled {
		t.Fatalf("expected scheduled, got %s", created.Status)
	}
	if len(acts.appended) != 1 || acts.appended[0].Type != activity.TypeInterviewScheduled {
		t.Fatalf("expected a single interview-scheduled activity")
	}
}

func TestInterviewUpdateStatus_OnlyFromScheduled(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageInterview, nil)}
	interviews := newMockInterviewRepo()
	acts := &mockActivityRepo{}
	uc := NewInterviewUsecase(interviews, apps, activitylog.NewLogger(acts, testLogger()))

	iv, _ := interviews.Create(context.Background(), repository.Interview{
		ApplicationID: apps.app.ID,
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		Mode:          InterviewModeOnline,
		Status:        InterviewStatusScheduled,
	})

	updated, err := uc.UpdateStatus(context.Background(), iv.ID, InterviewStatusCompleted, testActor())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != InterviewStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if len(acts.appended) != 1 || acts.appended[0].Type != activity.TypeInterviewCompleted {
		t.Fatalf("expected a single interview-completed activity")
	}

	if _, err := uc.UpdateStatus(context.Background(), iv.ID, InterviewStatusCancelled, testActor()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("completed interview must not be cancellable, got %v", err)
	}
}

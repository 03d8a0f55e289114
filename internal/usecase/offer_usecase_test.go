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

type mockOfferRepo struct {
	offers map[uuid.UUID]repository.Offer
}

func newMockOfferRepo() *mockOfferRepo {
	return &mockOfferRepo{offers: map[uuid.UUID]repository.Offer{}}
}

func (m *mockOfferRepo) Create(_ context.Context, o repository.Offer) (repository.Offer, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now().UTC()
	m.offers[o.ID] = o
	return o, nil
}

func (m *mockOfferRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return repository.Offer{}, repository.ErrOfferNotFound
	}
	return o, nil
}

func (m *mockOfferRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, respondedAt *time.Time) (repository.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return repository.Offer{}, repository.ErrOfferNotFound
	}
	o.Status = status
	o.RespondedAt = respondedAt
	m.offers[id] = o
	return o, nil
}

func (m *mockOfferRepo) FindByApplication(_ context.Context, applicationID uuid.UUID) (repository.Offer, error) {
	for _, o := range m.offers {
		if o.ApplicationID == applicationID {
			return o, nil
		}
	}
	return repository.Offer{}, repository.ErrOfferNotFound
}

func TestOfferSend_Success(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageOffer, nil)}
	acts := &mockActivityRepo{}
	uc := NewOfferUsecase(newMockOfferRepo(), apps, activitylog.NewLogger(acts, testLogger()))

	salary := int64(120_000)
	created, err := uc.Send(context.Background(), SendOfferInput{
		ApplicationID: apps.app.ID,
		JobTitle:      "Backend Engineer",
		Salary:        &salary,
		Currency:      "USD",
		Actor:         testActor(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != OfferStatusSent {
		t.Fatalf("expected sent, got %s", created.Status)
	}
	if created.SentAt.IsZero() {
		t.Fatalf("sent_at must be set")
	}
	if len(acts.appended) != 1 || acts.appended[0].Type != activity.TypeOfferSent {
		t.Fatalf("expected a single offer-sent activity")
	}
}

func TestOfferSend_MissingTitle(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageOffer, nil)}
	uc := NewOfferUsecase(newMockOfferRepo(), apps, activitylog.NewLogger(&mockActivityRepo{}, testLogger()))

	_, err := uc.Send(context.Background(), SendOfferInput{
		ApplicationID: apps.app.ID,
		JobTitle:      "  ",
		Actor:         testActor(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOfferUpdateStatus_OnlyFromSent(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageOffer, nil)}
	offers := newMockOfferRepo()
	acts := &mockActivityRepo{}
	uc := NewOfferUsecase(offers, apps, activitylog.NewLogger(acts, testLogger()))

	o, _ := offers.Create(context.Background(), repository.Offer{
		ApplicationID: apps.app.ID,
		JobTitle:      "Backend Engineer",
		Status:        OfferStatusSent,
		SentAt:        time.Now().UTC(),
	})

	signed, err := uc.UpdateStatus(context.Background(), o.ID, OfferStatusSigned, testActor())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if signed.Status != OfferStatusSigned || signed.RespondedAt == nil {
		t.Fatalf("expected signed with responded_at, got %+v", signed)
	}
	if len(acts.appended) != 1 || acts.appended[0].Type != activity.TypeOfferSigned {
		t.Fatalf("expected a single offer-signed activity")
	}

	if _, err := uc.UpdateStatus(context.Background(), o.ID, OfferStatusDeclined, testActor()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("signed offer must not be declinable, got %v", err)
	}
}

func TestOfferFindByApplication(t *testing.T) {
	apps := &mockAppRepo{app: testApp(pipeline.StageOffer, nil)}
	offers := newMockOfferRepo()
	uc := NewOfferUsecase(offers, apps, activitylog.NewLogger(&mockActivityRepo{}, testLogger()))

	if _, err := uc.FindByApplication(context.Background(), apps.app.ID); !errors.Is(err, ErrOfferNotFound) {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}

	_, _ = offers.Create(context.Background(), repository.Offer{
		ApplicationID: apps.app.ID,
		JobTitle:      "Backend Engineer",
		Status:        OfferStatusSent,
		SentAt:        time.Now().UTC(),
	})

	o, err := uc.FindByApplication(context.Background(), apps.app.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if o.JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected offer: %+v", o)
	}
}

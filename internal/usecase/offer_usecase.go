package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/service/activitylog"

	"github.com/google/uuid"
)

const (
	OfferStatusSent     = "sent"
	OfferStatusSigned   = "signed"
	OfferStatusDeclined = "declined"
)

type SendOfferInput struct {
	ApplicationID uuid.UUID
	JobTitle      string
	Salary        *int64
	Currency      string
	Actor         activitylog.Actor
}

type OfferUsecase interface {
	Send(ctx context.Context, in SendOfferInput) (repository.Offer, error)
	UpdateStatus(ctx context.Context, offerID uuid.UUID, status string, actor activitylog.Actor) (repository.Offer, error)
	FindByApplication(ctx context.Context, applicationID uuid.UUID) (repository.Offer, error)
}

type OfferService struct {
	offers repository.OfferRepository
	apps   repository.ApplicationRepository
	log    *activitylog.Logger
	now    func() time.Time
}

func NewOfferUsecase(offers repository.OfferRepository, apps repository.ApplicationRepository, log *activitylog.Logger) *OfferService {
	return &OfferService{offers: offers, apps: apps, log: log, now: time.Now}
}

func (u *OfferService) Send(ctx context.Context, in SendOfferInput) (repository.Offer, error) {
	if in.ApplicationID == uuid.Nil || strings.TrimSpace(in.JobTitle) == "" {
		return repository.Offer{}, ErrInvalidInput
	}

	app, err := u.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Offer{}, ErrApplicationNotFound
		}
		return repository.Offer{}, ErrInternal
	}

	o := repository.Offer{
		ApplicationID: app.ID,
		JobTitle:      strings.TrimSpace(in.JobTitle),
		Salary:        in.Salary,
		Status:        OfferStatusSent,
		SentAt:        u.now().UTC(),
	}
	if c := strings.TrimSpace(in.Currency); c != "" {
		o.Currency = &c
	}

	created, err := u.offers.Create(ctx, o)
	if err != nil {
		return repository.Offer{}, ErrInternal
	}

	u.log.OfferSent(ctx, activitylog.OfferEventParams{
		ApplicationID: app.ID,
		Actor:         in.Actor,
		OfferID:       created.ID,
		JobTitle:      created.JobTitle,
		Status:        created.Status,
		Stage:         app.Stage,
		SubStage:      app.SubStage,
	})

	return created, nil
}

func (u *OfferService) UpdateStatus(ctx context.Context, offerID uuid.UUID, status string, actor activitylog.Actor) (repository.Offer, error) {
	if offerID == uuid.Nil {
		return repository.Offer{}, ErrInvalidInput
	}
	if status != OfferStatusSigned && status != OfferStatusDeclined {
		return repository.Offer{}, ErrInvalidInput
	}

	o, err := u.offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return repository.Offer{}, ErrOfferNotFound
		}
		return repository.Offer{}, ErrInternal
	}
	if o.Status != OfferStatusSent {
		return repository.Offer{}, ErrInvalidInput
	}

	respondedAt := u.now().UTC()
	updated, err := u.offers.UpdateStatus(ctx, offerID, status, &respondedAt)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return repository.Offer{}, ErrOfferNotFound
		}
		return repository.Offer{}, ErrInternal
	}

	params := activitylog.OfferEventParams{
		ApplicationID: updated.ApplicationID,
		Actor:         actor,
		OfferID:       updated.ID,
		JobTitle:      updated.JobTitle,
		Status:        updated.Status,
	}
	if app, err := u.apps.FindByID(ctx, updated.ApplicationID); err == nil {
		params.Stage = app.Stage
		params.SubStage = app.SubStage
	}
	if status == OfferStatusSigned {
		u.log.OfferSigned(ctx, params)
	} else {
		u.log.OfferDeclined(ctx, params)
	}

	return updated, nil
}

func (u *OfferService) FindByApplication(ctx context.Context, applicationID uuid.UUID) (repository.Offer, error) {
	if applicationID == uuid.Nil {
		return repository.Offer{}, ErrInvalidInput
	}
	o, err := u.offers.FindByApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return repository.Offer{}, ErrOfferNotFound
		}
		return repository.Offer{}, ErrInternal
	}
	return o, nil
}

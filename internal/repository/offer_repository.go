package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"zeeknet-ats/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrOfferNotFound = errors.New("offer not found")

type Offer struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	JobTitle      string
	Salary        *int64
	Currency      *string
	Status        string
	SentAt        time.Time
	RespondedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OfferRepository interface {
	Create(ctx context.Context, o Offer) (Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (Offer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, respondedAt *time.Time) (Offer, error)
	FindByApplication(ctx context.Context, applicationID uuid.UUID) (Offer, error)
}

type PostgresOfferRepository struct {
	db database.DB
}

func NewPostgresOfferRepository(db database.DB) *PostgresOfferRepository {
	return &PostgresOfferRepository{db: db}
}

const offerColumns = `id, application_id, job_title, salary, currency, status, sent_at, responded_at, created_at, updated_at`

func (r *PostgresOfferRepository) Create(ctx context.Context, o Offer) (Offer, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO offers (id, application_id, job_title, salary, currency, status, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		o.ID, o.ApplicationID, o.JobTitle, o.Salary, o.Currency, o.Status, o.SentAt,
	)
	if err := row.Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return Offer{}, err
	}
	return o, nil
}

func (r *PostgresOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (Offer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	return scanOffer(row)
}

func (r *PostgresOfferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, respondedAt *time.Time) (Offer, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE offers SET status = $1, responded_at = $2, updated_at = NOW() WHERE id = $3
		 RETURNING `+offerColumns,
		status, respondedAt, id,
	)
	return scanOffer(row)
}

func (r *PostgresOfferRepository) FindByApplication(ctx context.Context, applicationID uuid.UUID) (Offer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE application_id = $1 ORDER BY sent_at DESC LIMIT 1`,
		applicationID,
	)
	return scanOffer(row)
}

func scanOffer(row database.Row) (Offer, error) {
	var o Offer
	if err := row.Scan(&o.ID, &o.ApplicationID, &o.JobTitle, &o.Salary, &o.Currency, &o.Status, &o.SentAt, &o.RespondedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Offer{}, ErrOfferNotFound
		}
		return Offer{}, err
	}
	return o, nil
}

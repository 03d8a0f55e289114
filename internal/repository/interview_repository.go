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

var ErrInterviewNotFound = errors.New("interview not found")

type Interview struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	ScheduledAt   time.Time
	Mode          string
	MeetingLink   *string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type InterviewRepository interface {
	Create(ctx context.Context, iv Interview) (Interview, error)
	FindByID(ctx context.Context, id uuid.UUID) (Interview, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Interview, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Interview, error)
}

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

const interviewColumns = `id, application_id, scheduled_at, mode, meeting_link, status, created_at, updated_at`

func (r *PostgresInterviewRepository) Create(ctx context.Context, iv Interview) (Interview, error) {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO interviews (id, application_id, scheduled_at, mode, meeting_link, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		iv.ID, iv.ApplicationID, iv.ScheduledAt, iv.Mode, iv.MeetingLink, iv.Status,
	)
	if err := row.Scan(&iv.CreatedAt, &iv.UpdatedAt); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

func (r *PostgresInterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (Interview, error) {
	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	return scanInterview(row)
}

func (r *PostgresInterviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Interview, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE interviews SET status = $1, updated_at = NOW() WHERE id = $2
		 RETURNING `+interviewColumns,
		status, id,
	)
	return scanInterview(row)
}

func (r *PostgresInterviewRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Interview, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Interview, 0)
	for rows.Next() {
		var iv Interview
		if err := rows.Scan(&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.Mode, &iv.MeetingLink, &iv.Status, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanInterview(row database.Row) (Interview, error) {
	var iv Interview
	if err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.Mode, &iv.MeetingLink, &iv.Status, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Interview{}, ErrInterviewNotFound
		}
		return Interview{}, err
	}
	return iv, nil
}

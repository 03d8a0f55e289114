package repository

import (
	"context"
	"database/sql"
	"errors"

	"zeeknet-ats/internal/database"
	"zeeknet-ats/internal/domain/application"
	"zeeknet-ats/internal/domain/pipeline"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationConflict = errors.New("application version conflict")
)

type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	// UpdateStage persists a new (stage, subStage) guarded by the optimistic
	// version; a stale expectedVersion yields ErrApplicationConflict.
	UpdateStage(ctx context.Context, id uuid.UUID, stage pipeline.Stage, subStage *pipeline.SubStage, expectedVersion int64) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, seeker_id, stage, sub_stage, version, created_at, updated_at`

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		id,
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage pipeline.Stage, subStage *pipeline.SubStage, expectedVersion int64) (application.Application, error) {
	var sub *string
	if subStage != nil {
		s := subStage.String()
		sub = &s
	}

	row := r.db.QueryRow(ctx,
		`UPDATE applications
		 SET stage = $1, sub_stage = $2, version = version + 1, updated_at = NOW()
		 WHERE id = $3 AND version = $4
		 RETURNING `+applicationColumns,
		stage.String(), sub, id, expectedVersion,
	)

	app, err := scanApplication(row)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, ErrApplicationNotFound) {
		return application.Application{}, err
	}

	// Distinguish a missing row from a stale version.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return application.Application{}, findErr
	}
	return application.Application{}, ErrApplicationConflict
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		app      application.Application
		stage    string
		subStage *string
	)
	if err := row.Scan(&app.ID, &app.JobID, &app.SeekerID, &stage, &subStage, &app.Version, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	app.Stage = pipeline.Stage(stage)
	if subStage != nil {
		s := pipeline.SubStage(*subStage)
		app.SubStage = &s
	}
	return app, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"zeeknet-ats/internal/database"
	"zeeknet-ats/internal/domain/pipeline"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobPostingNotFound = errors.New("job posting not found")

// JobPostingRepository resolves the pipeline configuration of the job that
// owns an application. Job posting CRUD itself lives outside this service.
type JobPostingRepository interface {
	GetEnabledStages(ctx context.Context, jobID uuid.UUID) ([]pipeline.Stage, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

func (r *PostgresJobPostingRepository) GetEnabledStages(ctx context.Context, jobID uuid.UUID) ([]pipeline.Stage, error) {
	var raw []string
	row := r.db.QueryRow(ctx, `SELECT enabled_stages FROM job_postings WHERE id = $1`, jobID)
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobPostingNotFound
		}
		return nil, err
	}

	out := make([]pipeline.Stage, 0, len(raw))
	for _, v := range raw {
		st := pipeline.Stage(v)
		if st.Valid() {
			out = append(out, st)
		}
	}
	return out, nil
}

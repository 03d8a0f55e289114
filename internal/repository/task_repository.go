package repository

import (
	"context"
	"database/sql"
	"errors"

	"zeeknet-ats/internal/database"
	"zeeknet-ats/internal/domain/task"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrTaskNotFound = errors.New("technical task not found")

type TaskRepository interface {
	Create(ctx context.Context, t task.Task) (task.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (task.Task, error)
	Update(ctx context.Context, t task.Task) (task.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]task.Task, error)
}

type PostgresTaskRepository struct {
	db database.DB
}

func NewPostgresTaskRepository(db database.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, application_id, title, description, deadline,
	document_key, document_filename,
	submission_key, submission_filename, submission_link, submission_note, submitted_at,
	status, rating, feedback, created_at, updated_at`

func (r *PostgresTaskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO technical_tasks (id, application_id, title, description, deadline, document_key, document_filename, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		t.ID, t.ApplicationID, t.Title, t.Description, t.Deadline,
		t.DocumentKey, t.DocumentFilename, t.Status.String(),
	)
	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM technical_tasks WHERE id = $1`,
		id,
	)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, t task.Task) (task.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE technical_tasks
		 SET title = $1, description = $2, deadline = $3,
		     document_key = $4, document_filename = $5,
		     submission_key = $6, submission_filename = $7, submission_link = $8, submission_note = $9, submitted_at = $10,
		     status = $11, rating = $12, feedback = $13, updated_at = NOW()
		 WHERE id = $14
		 RETURNING `+taskColumns,
		t.Title, t.Description, t.Deadline,
		t.DocumentKey, t.DocumentFilename,
		t.SubmissionKey, t.SubmissionFilename, t.SubmissionLink, t.SubmissionNote, t.SubmittedAt,
		t.Status.String(), t.Rating, t.Feedback, t.ID,
	)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM technical_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]task.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM technical_tasks
		 WHERE application_id = $1
		 ORDER BY created_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTaskFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTask(row database.Row) (task.Task, error) {
	var (
		t      task.Task
		status string
	)
	if err := row.Scan(
		&t.ID, &t.ApplicationID, &t.Title, &t.Description, &t.Deadline,
		&t.DocumentKey, &t.DocumentFilename,
		&t.SubmissionKey, &t.SubmissionFilename, &t.SubmissionLink, &t.SubmissionNote, &t.SubmittedAt,
		&status, &t.Rating, &t.Feedback, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, ErrTaskNotFound
		}
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	return t, nil
}

func scanTaskFromRows(rows database.Rows) (task.Task, error) {
	var (
		t      task.Task
		status string
	)
	if err := rows.Scan(
		&t.ID, &t.ApplicationID, &t.Title, &t.Description, &t.Deadline,
		&t.DocumentKey, &t.DocumentFilename,
		&t.SubmissionKey, &t.SubmissionFilename, &t.SubmissionLink, &t.SubmissionNote, &t.SubmittedAt,
		&status, &t.Rating, &t.Feedback, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	return t, nil
}

package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"zeeknet-ats/internal/database"
	"zeeknet-ats/internal/domain/activity"
	"zeeknet-ats/internal/domain/pipeline"

	"github.com/google/uuid"
)

const (
	DefaultActivityPageSize = 20
	MaxActivityPageSize     = 100
)

var ErrActivityNotFound = errors.New("activity not found")

// Cursor marks a position in the newest-first activity feed. CreatedAt plus
// ID form a strict total order; the ID tie-break keeps ordering deterministic
// when several activities share a millisecond timestamp.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode serializes the cursor to the wire format "<epoch-ms>_<id>".
func (c Cursor) Encode() string {
	return strconv.FormatInt(c.CreatedAt.UnixMilli(), 10) + "_" + c.ID.String()
}

// DecodeCursor parses the wire format. A malformed cursor is reported as an
// error; callers treat it as "start from the beginning".
func DecodeCursor(raw string) (Cursor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Cursor{}, fmt.Errorf("empty cursor")
	}
	parts := strings.SplitN(raw, "_", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("malformed cursor %q", raw)
	}
	ms, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor timestamp %q", parts[0])
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor id %q", parts[1])
	}
	return Cursor{CreatedAt: time.UnixMilli(ms).UTC(), ID: id}, nil
}

// Contains reports whether a row at (createdAt, id) is strictly older than
// the cursor position, i.e. belongs to a later page.
func (c Cursor) Contains(createdAt time.Time, id uuid.UUID) bool {
	if createdAt.Before(c.CreatedAt) {
		return true
	}
	if createdAt.Equal(c.CreatedAt) {
		return bytes.Compare(id[:], c.ID[:]) < 0
	}
	return false
}

// ActivityPage is one page of the newest-first feed.
type ActivityPage struct {
	Items      []activity.Activity
	HasMore    bool
	NextCursor *Cursor
}

// ActivityRepository is the append-only activity log store. Rows are never
// updated; the only delete is the administrative task cleanup.
type ActivityRepository interface {
	Append(ctx context.Context, act activity.Activity) (activity.Activity, error)
	ListByApplication(ctx context.Context, applicationID string) ([]activity.Activity, error)
	ListByApplicationPaginated(ctx context.Context, applicationID string, limit int, cursor *Cursor) (ActivityPage, error)
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}

type PostgresActivityRepository struct {
	db database.DB
}

func NewPostgresActivityRepository(db database.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

const activityColumns = `id, application_id, type, title, description, performed_by, performed_by_name, stage, sub_stage, metadata, created_at`

func (r *PostgresActivityRepository) Append(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	if act.ID == uuid.Nil {
		act.ID = uuid.New()
	}

	meta, err := activity.EncodeMetadata(act.Metadata)
	if err != nil {
		return activity.Activity{}, err
	}

	var stage, subStage *string
	if act.Stage != nil {
		s := act.Stage.String()
		stage = &s
	}
	if act.SubStage != nil {
		s := act.SubStage.String()
		subStage = &s
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO ats_activities (id, application_id, type, title, description, performed_by, performed_by_name, stage, sub_stage, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		act.ID, act.ApplicationID, act.Type.String(), act.Title, act.Description,
		act.PerformedBy, act.PerformedByName, stage, subStage, meta,
	)
	if err := row.Scan(&act.CreatedAt); err != nil {
		return activity.Activity{}, err
	}
	act.CreatedAt = act.CreatedAt.UTC()
	return act, nil
}

func (r *PostgresActivityRepository) ListByApplication(ctx context.Context, applicationID string) ([]activity.Activity, error) {
	appID, err := uuid.Parse(strings.TrimSpace(applicationID))
	if err != nil {
		// A malformed id means "no data", not a store error.
		return []activity.Activity{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+activityColumns+`
		 FROM ats_activities
		 WHERE application_id = $1
		 ORDER BY created_at DESC, id DESC`,
		appID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

func (r *PostgresActivityRepository) ListByApplicationPaginated(ctx context.Context, applicationID string, limit int, cursor *Cursor) (ActivityPage, error) {
	appID, err := uuid.Parse(strings.TrimSpace(applicationID))
	if err != nil {
		return ActivityPage{Items: []activity.Activity{}}, nil
	}

	if limit <= 0 {
		limit = DefaultActivityPageSize
	}
	if limit > MaxActivityPageSize {
		limit = MaxActivityPageSize
	}

	var (
		rows database.Rows
	)
	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT `+activityColumns+`
			 FROM ats_activities
			 WHERE application_id = $1 AND (created_at, id) < ($2, $3)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			appID, cursor.CreatedAt, cursor.ID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+activityColumns+`
			 FROM ats_activities
			 WHERE application_id = $1
			 ORDER BY created_at DESC, id DESC
			 LIMIT $2`,
			appID, limit+1,
		)
	}
	if err != nil {
		return ActivityPage{}, err
	}
	defer rows.Close()

	items, err := scanActivities(rows)
	if err != nil {
		return ActivityPage{}, err
	}

	page := ActivityPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
	}
	if n := len(page.Items); n > 0 {
		last := page.Items[n-1]
		page.NextCursor = &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return page, nil
}

// DeleteByTask removes the task-scoped audit rows for a hard-deleted task.
// The synthetic task-deleted entry appended afterwards keeps the trail.
func (r *PostgresActivityRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM ats_activities
		 WHERE type IN ($1, $2) AND metadata->>'task_id' = $3`,
		activity.TypeTaskAssigned.String(), activity.TypeTaskUpdated.String(), taskID.String(),
	)
	return err
}

func scanActivities(rows database.Rows) ([]activity.Activity, error) {
	out := make([]activity.Activity, 0)
	for rows.Next() {
		var (
			act      activity.Activity
			typ      string
			stage    *string
			subStage *string
			meta     []byte
		)
		if err := rows.Scan(
			&act.ID, &act.ApplicationID, &typ, &act.Title, &act.Description,
			&act.PerformedBy, &act.PerformedByName, &stage, &subStage, &meta, &act.CreatedAt,
		); err != nil {
			return nil, err
		}
		act.Type = activity.Type(typ)
		if stage != nil {
			s := pipeline.Stage(*stage)
			act.Stage = &s
		}
		if subStage != nil {
			s := pipeline.SubStage(*subStage)
			act.SubStage = &s
		}
		if len(meta) > 0 {
			m, err := activity.DecodeMetadata(act.Type, meta)
			if err != nil {
				return nil, err
			}
			act.Metadata = m
		}
		act.CreatedAt = act.CreatedAt.UTC()
		out = append(out, act)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package seeder

import (
	"context"
	"fmt"

	"zeeknet-ats/internal/database"
	"zeeknet-ats/internal/domain/pipeline"
)

// StageDefaultsSeeder backfills enabled_stages on job postings created before
// per-job stage configuration existed. An empty set would make every
// transition fail stage gating.
type StageDefaultsSeeder struct{}

func (StageDefaultsSeeder) Name() string { return "stage_defaults" }

func (StageDefaultsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_postings", "id", "enabled_stages"); err != nil {
		return err
	}

	stages := pipeline.AllStages()
	enabled := make([]string, 0, len(stages))
	for _, s := range stages {
		enabled = append(enabled, s.String())
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	affected, err := tx.Exec(
		ctx,
		`UPDATE job_postings SET enabled_stages = $1 WHERE enabled_stages IS NULL OR enabled_stages = '{}'`,
		enabled,
	)
	if err != nil {
		return err
	}
	_ = affected

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

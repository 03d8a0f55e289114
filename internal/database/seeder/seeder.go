package seeder

import (
	"context"

	"zeeknet-ats/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

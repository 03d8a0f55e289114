package application

import (
	"time"

	"zeeknet-ats/internal/domain/pipeline"

	"github.com/google/uuid"
)

// Application is the pipeline view of a job application. It is created on
// submission and mutated only through stage-transition or task operations.
// Version is bumped on every stage write and guards concurrent transitions.
type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	SeekerID  uuid.UUID
	Stage     pipeline.Stage
	SubStage  *pipeline.SubStage
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

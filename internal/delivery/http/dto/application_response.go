package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStageResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	SeekerID  uuid.UUID `json:"seeker_id"`
	Stage     string    `json:"stage"`
	SubStage  *string   `json:"sub_stage,omitempty"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

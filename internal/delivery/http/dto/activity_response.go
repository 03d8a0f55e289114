package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ActivityResponse struct {
	ID              uuid.UUID       `json:"id"`
	ApplicationID   uuid.UUID       `json:"application_id"`
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	PerformedBy     uuid.UUID       `json:"performed_by"`
	PerformedByName string          `json:"performed_by_name"`
	Stage           *string         `json:"stage,omitempty"`
	SubStage        *string         `json:"sub_stage,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ActivityFeedResponse struct {
	Activities []ActivityResponse `json:"activities"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
}

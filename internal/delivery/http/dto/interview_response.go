package dto

import (
	"time"

	"github.com/google/uuid"
)

type InterviewResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Mode          string    `json:"mode"`
	MeetingLink   *string   `json:"meeting_link,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type OfferResponse struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"application_id"`
	JobTitle      string     `json:"job_title"`
	Salary        *int64     `json:"salary,omitempty"`
	Currency      *string    `json:"currency,omitempty"`
	Status        string     `json:"status"`
	SentAt        time.Time  `json:"sent_at"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

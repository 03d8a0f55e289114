package dto

import (
	"time"

	"github.com/google/uuid"
)

type TaskResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Deadline      time.Time `json:"deadline"`

	DocumentURL      *string `json:"document_url,omitempty"`
	DocumentFilename *string `json:"document_filename,omitempty"`

	SubmissionURL      *string    `json:"submission_url,omitempty"`
	SubmissionFilename *string    `json:"submission_filename,omitempty"`
	SubmissionLink     *string    `json:"submission_link,omitempty"`
	SubmissionNote     *string    `json:"submission_note,omitempty"`
	SubmittedAt        *time.Time `json:"submitted_at,omitempty"`

	Status   string  `json:"status"`
	Rating   *int    `json:"rating,omitempty"`
	Feedback *string `json:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

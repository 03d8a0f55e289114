package task

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks a technical task through its lifecycle. Transitions only move
// forward: assigned -> submitted -> under_review -> completed, with cancelled
// reachable from any non-terminal state.
type Status string

const (
	StatusAssigned    Status = "assigned"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAssigned, StatusSubmitted, StatusUnderReview, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether next is a legal forward move from s.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusAssigned:
		return next == StatusSubmitted
	case StatusSubmitted:
		return next == StatusUnderReview
	case StatusUnderReview:
		return next == StatusCompleted
	}
	return false
}

// Task is a take-home assessment attached to one application. The document
// fields hold storage keys, not URLs; signed retrieval links are resolved at
// read time.
type Task struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Title         string
	Description   string
	Deadline      time.Time

	DocumentKey      *string
	DocumentFilename *string

	SubmissionKey      *string
	SubmissionFilename *string
	SubmissionLink     *string
	SubmissionNote     *string
	SubmittedAt        *time.Time

	Status   Status
	Rating   *int
	Feedback *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

package activity

import (
	"encoding/json"
	"fmt"
	"time"

	"zeeknet-ats/internal/domain/pipeline"

	"github.com/google/uuid"
)

// Type is the closed enumeration of pipeline events an activity can record.
type Type string

const (
	TypeStageChanged    Type = "stage-changed"
	TypeSubStageChanged Type = "sub-stage-changed"

	TypeTaskAssigned Type = "task-assigned"
	TypeTaskUpdated  Type = "task-updated"
	TypeTaskDeleted  Type = "task-deleted"

	TypeInterviewScheduled Type = "interview-scheduled"
	TypeInterviewCompleted Type = "interview-completed"
	TypeInterviewCancelled Type = "interview-cancelled"

	TypeOfferSent     Type = "offer-sent"
	TypeOfferSigned   Type = "offer-signed"
	TypeOfferDeclined Type = "offer-declined"

	TypeCompensationInitiated              Type = "compensation-initiated"
	TypeCompensationUpdated                Type = "compensation-updated"
	TypeCompensationApproved               Type = "compensation-approved"
	TypeCompensationMeetingScheduled       Type = "compensation-meeting-scheduled"
	TypeCompensationMeetingStatusUpdated   Type = "compensation-meeting-status-updated"

	TypeCommentAdded Type = "comment-added"
)

var allTypes = map[Type]struct{}{
	TypeStageChanged:                     {},
	TypeSubStageChanged:                  {},
	TypeTaskAssigned:                     {},
	TypeTaskUpdated:                      {},
	TypeTaskDeleted:                      {},
	TypeInterviewScheduled:               {},
	TypeInterviewCompleted:               {},
	TypeInterviewCancelled:               {},
	TypeOfferSent:                        {},
	TypeOfferSigned:                      {},
	TypeOfferDeclined:                    {},
	TypeCompensationInitiated:            {},
	TypeCompensationUpdated:              {},
	TypeCompensationApproved:             {},
	TypeCompensationMeetingScheduled:     {},
	TypeCompensationMeetingStatusUpdated: {},
	TypeCommentAdded:                     {},
}

func (t Type) Valid() bool {
	_, ok := allTypes[t]
	return ok
}

func (t Type) String() string {
	return string(t)
}

// Activity is one immutable audit record tied to an application. Once
// appended it is never mutated or reordered; (CreatedAt, ID) forms the strict
// total order the feed cursor pages over.
type Activity struct {
	ID              uuid.UUID
	ApplicationID   uuid.UUID
	Type            Type
	Title           string
	Description     string
	PerformedBy     uuid.UUID
	PerformedByName string
	Stage           *pipeline.Stage
	SubStage        *pipeline.SubStage
	Metadata        Metadata
	CreatedAt       time.Time
}

// Metadata is the type-specific payload attached to an activity. Each
// activity type family carries its own concrete struct so illegal
// payload/type combinations stay unrepresentable.
type Metadata interface {
	activityMetadata()
}

type StageChangeMetadata struct {
	PreviousStage    string `json:"previous_stage,omitempty"`
	PreviousSubStage string `json:"previous_sub_stage,omitempty"`
	NextStage        string `json:"next_stage,omitempty"`
	NextSubStage     string `json:"next_sub_stage,omitempty"`
}

type TaskMetadata struct {
	TaskID   string     `json:"task_id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Status   string     `json:"status,omitempty"`
	Rating   *int       `json:"rating,omitempty"`
}

type InterviewMetadata struct {
	InterviewID string     `json:"interview_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Mode        string     `json:"mode,omitempty"`
	Status      string     `json:"status,omitempty"`
}

type OfferMetadata struct {
	OfferID  string `json:"offer_id,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	Status   string `json:"status,omitempty"`
}

type CompensationMetadata struct {
	Amount      int64      `json:"amount,omitempty"`
	Currency    string     `json:"currency,omitempty"`
	Status      string     `json:"status,omitempty"`
	MeetingAt   *time.Time `json:"meeting_at,omitempty"`
	MeetingLink string     `json:"meeting_link,omitempty"`
}

type CommentMetadata struct {
	Comment string `json:"comment,omitempty"`
}

func (StageChangeMetadata) activityMetadata()  {}
func (TaskMetadata) activityMetadata()         {}
func (InterviewMetadata) activityMetadata()    {}
func (OfferMetadata) activityMetadata()        {}
func (CompensationMetadata) activityMetadata() {}
func (CommentMetadata) activityMetadata()      {}

// EncodeMetadata marshals a payload for storage. Nil metadata encodes to nil.
func EncodeMetadata(m Metadata) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// DecodeMetadata rebuilds the typed payload for a stored activity row based
// on the activity type.
func DecodeMetadata(t Type, raw []byte) (Metadata, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	decode := func(out Metadata) (Metadata, error) {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, err
		}
		return out, nil
	}

	switch t {
	case TypeStageChanged, TypeSubStageChanged:
		m := &StageChangeMetadata{}
		return decode(m)
	case TypeTaskAssigned, TypeTaskUpdated, TypeTaskDeleted:
		m := &TaskMetadata{}
		return decode(m)
	case TypeInterviewScheduled, TypeInterviewCompleted, TypeInterviewCancelled:
		m := &InterviewMetadata{}
		return decode(m)
	case TypeOfferSent, TypeOfferSigned, TypeOfferDeclined:
		m := &OfferMetadata{}
		return decode(m)
	case TypeCompensationInitiated, TypeCompensationUpdated, TypeCompensationApproved,
		TypeCompensationMeetingScheduled, TypeCompensationMeetingStatusUpdated:
		m := &CompensationMetadata{}
		return decode(m)
	case TypeCommentAdded:
		m := &CommentMetadata{}
		return decode(m)
	default:
		return nil, fmt.Errorf("unknown activity type %q", t)
	}
}

package usecase

import "errors"

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrTaskNotFound        = errors.New("technical task not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrOfferNotFound       = errors.New("offer not found")

	ErrInvalidStage            = errors.New("invalid stage")
	ErrStageNotEnabled         = errors.New("stage not enabled for job")
	ErrInvalidSubStage         = errors.New("invalid sub-stage for stage")
	ErrInvalidTaskTransition   = errors.New("invalid task status transition")
	ErrTaskApplicationMismatch = errors.New("task does not belong to application")
	ErrMissingSubmission       = errors.New("submission requires a file or a link")
	ErrInvalidInput            = errors.New("invalid input")

	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("stage changed concurrently, retry")
	ErrInternal  = errors.New("internal error")
)

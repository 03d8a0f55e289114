package handler

import (
	"errors"
	"time"

	"zeeknet-ats/internal/delivery/http/dto"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/pkg/response"
	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type scheduleInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	Mode        string    `json:"mode"`
	MeetingLink string    `json:"meeting_link"`
}

type updateInterviewRequest struct {
	Status string `json:"status"`
}

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/applications/:id/interviews", h.Schedule)
	r.Get("/applications/:id/interviews", h.ListByApplication)
	r.Patch("/interviews/:id/status", h.UpdateStatus)
}

func (h *InterviewHandler) Schedule(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req scheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	created, err := h.uc.Schedule(c.Context(), usecase.ScheduleInterviewInput{
		ApplicationID: applicationID,
		ScheduledAt:   req.ScheduledAt,
		Mode:          req.Mode,
		MeetingLink:   req.MeetingLink,
		Actor:         actor,
	})
	if err != nil {
		return mapInterviewUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, toInterviewResponse(created))
}

func (h *InterviewHandler) UpdateStatus(c fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid interview id", nil, err)
	}

	var req updateInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	updated, err := h.uc.UpdateStatus(c.Context(), interviewID, req.Status, actor)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toInterviewResponse(updated))
}

func (h *InterviewHandler) ListByApplication(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	items, err := h.uc.ListByApplication(c.Context(), applicationID)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}

	out := make([]dto.InterviewResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toInterviewResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func toInterviewResponse(iv repository.Interview) dto.InterviewResponse {
	return dto.InterviewResponse{
		ID:            iv.ID,
		ApplicationID: iv.ApplicationID,
		ScheduledAt:   iv.ScheduledAt,
		Mode:          iv.Mode,
		MeetingLink:   iv.MeetingLink,
		Status:        iv.Status,
		CreatedAt:     iv.CreatedAt,
	}
}

func mapInterviewUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrInterviewNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Interview not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

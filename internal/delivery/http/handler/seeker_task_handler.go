package handler

import (
	"zeeknet-ats/internal/delivery/http/dto"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/pkg/response"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SeekerTaskHandler struct {
	uc usecase.SeekerTaskUsecase
}

func NewSeekerTaskHandler(uc usecase.SeekerTaskUsecase) *SeekerTaskHandler {
	return &SeekerTaskHandler{uc: uc}
}

func (h *SeekerTaskHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/applications/:id/tasks")
	grp.Get("/", h.List)
	grp.Post("/:taskId/submit", h.Submit)
}

func (h *SeekerTaskHandler) Submit(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}
	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid task id", nil, err)
	}

	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	submission, err := formDocument(c, "submission")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid submission upload", nil, err)
	}

	item, err := h.uc.Submit(c.Context(), userID, applicationID, taskID, usecase.SubmitTaskInput{
		Submission:     submission,
		SubmissionLink: c.FormValue("submission_link"),
		SubmissionNote: c.FormValue("submission_note"),
	})
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toTaskResponse(item))
}

func (h *SeekerTaskHandler) List(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListForSeeker(c.Context(), userID, applicationID)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	out := make([]dto.TaskResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toTaskResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

package handler

import (
	"errors"

	"zeeknet-ats/internal/delivery/http/dto"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/domain/application"
	"zeeknet-ats/internal/domain/pipeline"
	"zeeknet-ats/internal/pkg/response"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type moveStageRequest struct {
	NextStage string  `json:"next_stage"`
	SubStage  *string `json:"sub_stage"`
}

type updateSubStageRequest struct {
	SubStage string `json:"sub_stage"`
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

type PipelineHandler struct {
	uc usecase.PipelineUsecase
}

func NewPipelineHandler(uc usecase.PipelineUsecase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

func (h *PipelineHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/applications/:id")
	grp.Post("/stage", h.MoveStage)
	grp.Patch("/sub-stage", h.UpdateSubStage)
	grp.Post("/comments", h.AddComment)
}

func (h *PipelineHandler) MoveStage(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req moveStageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	stage, err := pipeline.ParseStage(req.NextStage)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid stage", nil, err)
	}

	var subStage *pipeline.SubStage
	if req.SubStage != nil {
		sub, err := pipeline.ParseSubStage(*req.SubStage)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid sub-stage", nil, err)
		}
		subStage = &sub
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	app, err := h.uc.MoveStage(c.Context(), usecase.MoveStageInput{
		ApplicationID: applicationID,
		NextStage:     stage,
		SubStage:      subStage,
		Actor:         actor,
	})
	if err != nil {
		return mapPipelineUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toApplicationStageResponse(app))
}

func (h *PipelineHandler) UpdateSubStage(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req updateSubStageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	sub, err := pipeline.ParseSubStage(req.SubStage)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid sub-stage", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	app, err := h.uc.UpdateSubStage(c.Context(), usecase.UpdateSubStageInput{
		ApplicationID: applicationID,
		SubStage:      sub,
		Actor:         actor,
	})
	if err != nil {
		return mapPipelineUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toApplicationStageResponse(app))
}

func (h *PipelineHandler) AddComment(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req addCommentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	if err := h.uc.AddComment(c.Context(), usecase.AddCommentInput{
		ApplicationID: applicationID,
		Comment:       req.Comment,
		Actor:         actor,
	}); err != nil {
		return mapPipelineUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, nil)
}

func toApplicationStageResponse(app application.Application) dto.ApplicationStageResponse {
	res := dto.ApplicationStageResponse{
		ID:        app.ID,
		JobID:     app.JobID,
		SeekerID:  app.SeekerID,
		Stage:     app.Stage.String(),
		Version:   app.Version,
		UpdatedAt: app.UpdatedAt,
	}
	if app.SubStage != nil {
		s := app.SubStage.String()
		res.SubStage = &s
	}
	return res
}

func mapPipelineUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidStage):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid stage", nil, err)
	case errors.Is(err, usecase.ErrStageNotEnabled):
		return middleware.NewAppError(fiber.StatusBadRequest, "Stage not enabled for this job", nil, err)
	case errors.Is(err, usecase.ErrInvalidSubStage):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid sub-stage for stage", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Application was modified concurrently", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"errors"

	"zeeknet-ats/internal/delivery/http/dto"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/pkg/response"
	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type sendOfferRequest struct {
	JobTitle string `json:"job_title"`
	Salary   *int64 `json:"salary"`
	Currency string `json:"currency"`
}

type updateOfferRequest struct {
	Status string `json:"status"`
}

type OfferHandler struct {
	uc usecase.OfferUsecase
}

func NewOfferHandler(uc usecase.OfferUsecase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

func (h *OfferHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/applications/:id/offer", h.Send)
	r.Get("/applications/:id/offer", h.FindByApplication)
	r.Patch("/offers/:id/status", h.UpdateStatus)
}

func (h *OfferHandler) Send(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req sendOfferRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	created, err := h.uc.Send(c.Context(), usecase.SendOfferInput{
		ApplicationID: applicationID,
		JobTitle:      req.JobTitle,
		Salary:        req.Salary,
		Currency:      req.Currency,
		Actor:         actor,
	})
	if err != nil {
		return mapOfferUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, toOfferResponse(created))
}

func (h *OfferHandler) UpdateStatus(c fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offer id", nil, err)
	}

	var req updateOfferRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	updated, err := h.uc.UpdateStatus(c.Context(), offerID, req.Status, actor)
	if err != nil {
		return mapOfferUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toOfferResponse(updated))
}

func (h *OfferHandler) FindByApplication(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	o, err := h.uc.FindByApplication(c.Context(), applicationID)
	if err != nil {
		return mapOfferUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toOfferResponse(o))
}

func toOfferResponse(o repository.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:            o.ID,
		ApplicationID: o.ApplicationID,
		JobTitle:      o.JobTitle,
		Salary:        o.Salary,
		Currency:      o.Currency,
		Status:        o.Status,
		SentAt:        o.SentAt,
		RespondedAt:   o.RespondedAt,
	}
}

func mapOfferUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrOfferNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Offer not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

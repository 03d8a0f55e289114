package handler

import (
	"strconv"

	"zeeknet-ats/internal/delivery/http/dto"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/pkg/response"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ActivityHandler struct {
	uc usecase.ActivityFeedUsecase
}

func NewActivityHandler(uc usecase.ActivityFeedUsecase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

func (h *ActivityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/applications/:id/activities")
	grp.Get("/", h.ListPaginated)
	grp.Get("/all", h.ListAll)
}

func (h *ActivityHandler) ListPaginated(c fiber.Ctx) error {
	applicationID := c.Params("id")
	limit := parseQueryInt(c, "limit", 0)

	page, err := h.uc.ListPaginated(c.Context(), applicationID, limit, c.Query("cursor"))
	if err != nil {
		return mapActivityUsecaseError(err)
	}

	res := dto.ActivityFeedResponse{
		Activities: toActivityResponses(page.Activities),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ActivityHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), c.Params("id"))
	if err != nil {
		return mapActivityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toActivityResponses(items))
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func toActivityResponses(items []usecase.FeedItem) []dto.ActivityResponse {
	res := make([]dto.ActivityResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.ActivityResponse{
			ID:              it.ID,
			ApplicationID:   it.ApplicationID,
			Type:            it.Type,
			Title:           it.Title,
			Description:     it.Description,
			PerformedBy:     it.PerformedBy,
			PerformedByName: it.PerformedByName,
			Stage:           it.Stage,
			SubStage:        it.SubStage,
			Metadata:        it.Metadata,
			CreatedAt:       it.CreatedAt,
		})
	}
	return res
}

func mapActivityUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

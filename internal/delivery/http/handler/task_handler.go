package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"time"

	"zeeknet-ats/internal/delivery/http/dto"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/domain/task"
	"zeeknet-ats/internal/pkg/response"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type updateTaskRequest struct {
	Status   *string `json:"status"`
	Rating   *int    `json:"rating"`
	Feedback *string `json:"feedback"`
}

type TaskHandler struct {
	uc usecase.TechnicalTaskUsecase
}

func NewTaskHandler(uc usecase.TechnicalTaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

func (h *TaskHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/tasks", h.Assign)
	r.Get("/applications/:id/tasks", h.ListByApplication)
	r.Patch("/tasks/:id", h.Update)
	r.Delete("/tasks/:id", h.Delete)
}

func (h *TaskHandler) Assign(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.FormValue("application_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	deadline, err := time.Parse(time.RFC3339, c.FormValue("deadline"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid deadline", nil, err)
	}

	doc, err := formDocument(c, "document")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid document upload", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	item, err := h.uc.Assign(c.Context(), usecase.AssignTaskInput{
		ApplicationID: applicationID,
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Deadline:      deadline,
		Document:      doc,
		Actor:         actor,
	})
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, toTaskResponse(item))
}

func (h *TaskHandler) Update(c fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid task id", nil, err)
	}

	var req updateTaskRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	in := usecase.UpdateTaskInput{
		Rating:   req.Rating,
		Feedback: req.Feedback,
	}
	if req.Status != nil {
		st := task.Status(*req.Status)
		if !st.Valid() {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid task status", nil, nil)
		}
		in.Status = &st
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	item, err := h.uc.Update(c.Context(), taskID, in, actor)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toTaskResponse(item))
}

func (h *TaskHandler) Delete(c fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid task id", nil, err)
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), taskID, actor); err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *TaskHandler) ListByApplication(c fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	items, err := h.uc.ListByApplication(c.Context(), applicationID)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	out := make([]dto.TaskResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toTaskResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// formDocument reads an optional multipart file field into memory. A missing
// field is not an error.
func formDocument(c fiber.Ctx, field string) (*usecase.DocumentUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readUpload(fh)
}

func readUpload(fh *multipart.FileHeader) (*usecase.DocumentUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &usecase.DocumentUpload{
		Content:     content,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

func toTaskResponse(item usecase.TaskItem) dto.TaskResponse {
	t := item.Task
	return dto.TaskResponse{
		ID:                 t.ID,
		ApplicationID:      t.ApplicationID,
		Title:              t.Title,
		Description:        t.Description,
		Deadline:           t.Deadline,
		DocumentURL:        item.DocumentURL,
		DocumentFilename:   t.DocumentFilename,
		SubmissionURL:      item.SubmissionURL,
		SubmissionFilename: t.SubmissionFilename,
		SubmissionLink:     t.SubmissionLink,
		SubmissionNote:     t.SubmissionNote,
		SubmittedAt:        t.SubmittedAt,
		Status:             t.Status.String(),
		Rating:             t.Rating,
		Feedback:           t.Feedback,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func mapTaskUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrTaskNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Task not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidTaskTransition):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid task status transition", nil, err)
	case errors.Is(err, usecase.ErrTaskApplicationMismatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Task does not belong to application", nil, err)
	case errors.Is(err, usecase.ErrMissingSubmission):
		return middleware.NewAppError(fiber.StatusBadRequest, "Submission file or link required", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/domain/application"
	"zeeknet-ats/internal/domain/pipeline"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubPipelineUsecase struct {
	moveIn  usecase.MoveStageInput
	moveErr error
}

func (s *stubPipelineUsecase) MoveStage(_ context.Context, in usecase.MoveStageInput) (application.Application, error) {
	s.moveIn = in
	if s.moveErr != nil {
		return application.Application{}, s.moveErr
	}
	return application.Application{ID: in.ApplicationID, Stage: in.NextStage, SubStage: in.SubStage, Version: 2}, nil
}

func (s *stubPipelineUsecase) UpdateSubStage(_ context.Context, in usecase.UpdateSubStageInput) (application.Application, error) {
	sub := in.SubStage
	return application.Application{ID: in.ApplicationID, SubStage: &sub}, nil
}

func (s *stubPipelineUsecase) AddComment(_ context.Context, _ usecase.AddCommentInput) error {
	return nil
}

func newPipelineTestApp(uc usecase.PipelineUsecase, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(func(c fiber.Ctx) error {
		c.Locals(middleware.CtxUserIDKey, userID)
		c.Locals(middleware.CtxEmailKey, "hiring@acme.test")
		return c.Next()
	})
	NewPipelineHandler(uc).RegisterRoutes(app)
	return app
}

func TestMoveStage_BindsNextStageBody(t *testing.T) {
	uc := &stubPipelineUsecase{}
	userID := uuid.New()
	app := newPipelineTestApp(uc, userID)

	appID := uuid.New()
	body := bytes.NewBufferString(`{"next_stage":"interview","sub_stage":"phone_screen"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/applications/"+appID.String()+"/stage", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if uc.moveIn.ApplicationID != appID {
		t.Fatalf("expected application %s, got %s", appID, uc.moveIn.ApplicationID)
	}
	if uc.moveIn.NextStage != pipeline.StageInterview {
		t.Fatalf("expected stage interview, got %q", uc.moveIn.NextStage)
	}
	if uc.moveIn.SubStage == nil || *uc.moveIn.SubStage != pipeline.SubStagePhoneScreen {
		t.Fatalf("expected sub-stage phone_screen, got %v", uc.moveIn.SubStage)
	}
	if uc.moveIn.Actor.ID != userID {
		t.Fatalf("expected actor %s, got %s", userID, uc.moveIn.Actor.ID)
	}
}

func TestMoveStage_UnknownStageRejected(t *testing.T) {
	uc := &stubPipelineUsecase{}
	app := newPipelineTestApp(uc, uuid.New())

	body := bytes.NewBufferString(`{"next_stage":"garbage"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/applications/"+uuid.NewString()+"/stage", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if uc.moveIn.ApplicationID != uuid.Nil {
		t.Fatalf("usecase must not be reached on a bad stage")
	}
}

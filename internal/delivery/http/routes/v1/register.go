package v1

import (
	"zeeknet-ats/internal/config"
	"zeeknet-ats/internal/database"
	"zeeknet-ats/internal/delivery/http/handler"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/pkg/jwt"
	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/service/activitylog"
	"zeeknet-ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Dependencies carries collaborators that outlive a single request and are
// built during bootstrap.
type Dependencies struct {
	FeedCache   usecase.FeedCache
	Documents   usecase.DocumentStore
	ActivityLog *activitylog.Logger
}

func Register(r fiber.Router, cfg config.Config, db database.DB, deps Dependencies) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	appRepo := repository.NewPostgresApplicationRepository(db)
	jobRepo := repository.NewPostgresJobPostingRepository(db)
	activityRepo := repository.NewPostgresActivityRepository(db)
	taskRepo := repository.NewPostgresTaskRepository(db)
	interviewRepo := repository.NewPostgresInterviewRepository(db)
	offerRepo := repository.NewPostgresOfferRepository(db)

	pipelineUC := usecase.NewPipelineUsecase(appRepo, jobRepo, deps.ActivityLog)
	feedUC := usecase.NewActivityFeedUsecase(activityRepo, deps.FeedCache)
	taskUC := usecase.NewTechnicalTaskUsecase(taskRepo, appRepo, activityRepo, deps.Documents, deps.ActivityLog)
	seekerTaskUC := usecase.NewSeekerTaskUsecase(taskRepo, appRepo, deps.Documents)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, appRepo, deps.ActivityLog)
	offerUC := usecase.NewOfferUsecase(offerRepo, appRepo, deps.ActivityLog)

	protected := r.Group("", authMw.Middleware())

	handler.NewPipelineHandler(pipelineUC).RegisterRoutes(protected)
	handler.NewActivityHandler(feedUC).RegisterRoutes(protected)
	handler.NewTaskHandler(taskUC).RegisterRoutes(protected)
	handler.NewSeekerTaskHandler(seekerTaskUC).RegisterRoutes(protected)
	handler.NewInterviewHandler(interviewUC).RegisterRoutes(protected)
	handler.NewOfferHandler(offerUC).RegisterRoutes(protected)
}

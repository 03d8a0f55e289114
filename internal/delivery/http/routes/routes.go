package routes

import (
	"zeeknet-ats/internal/config"
	"zeeknet-ats/internal/database"
	v1 "zeeknet-ats/internal/delivery/http/routes/v1"
	"zeeknet-ats/internal/pkg/response"
	"zeeknet-ats/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg  config.Config
	db   database.DB
	deps v1.Dependencies
	ws   *ws.Handler
}

func NewRegistry(cfg config.Config, db database.DB, deps v1.Dependencies, wsHandler *ws.Handler) *Registry {
	return &Registry{cfg: cfg, db: db, deps: deps, ws: wsHandler}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	app.Get("/health", func(c fiber.Ctx) error {
		if r.db != nil {
			if err := r.db.Ping(c.Context()); err != nil {
				return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", nil)
			}
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil {
		return
	}
	app.Get("/ws", r.ws.HandlePipelineWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.deps)
}

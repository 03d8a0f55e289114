package app

import (
	"fmt"
	"strings"

	"zeeknet-ats/internal/config"
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/delivery/http/routes"
	v1 "zeeknet-ats/internal/delivery/http/routes/v1"
	"zeeknet-ats/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)

	deps := v1.Dependencies{
		FeedCache:   c.Cache,
		Documents:   c.Documents,
		ActivityLog: c.ActivityLog,
	}
	wsHandler := ws.NewHandler(c.Hub, c.Logger)

	registry := routes.NewRegistry(cfg, c.DB, deps, wsHandler)
	registry.Register(f)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(cfg, container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

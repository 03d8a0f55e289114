package routes

import (
	"zeeknet-ats/internal/config"
	"zeeknet-ats/internal/database"
	v1 "zeeknet-ats/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, deps v1.Dependencies) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, deps)
}

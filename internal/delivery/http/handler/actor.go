package handler

import (
	"zeeknet-ats/internal/delivery/http/middleware"
	"zeeknet-ats/internal/service/activitylog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// actorFromCtx resolves the authenticated caller as the performer of a
// pipeline action. The display name falls back to the token email when the
// client does not send one.
func actorFromCtx(c fiber.Ctx) (activitylog.Actor, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return activitylog.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	name := c.Get("X-Actor-Name")
	if name == "" {
		if email, ok := c.Locals(middleware.CtxEmailKey).(string); ok {
			name = email
		}
	}

	return activitylog.Actor{ID: userID, Name: name}, nil
}

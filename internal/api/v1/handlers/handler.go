package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tasktracker/internal/auth"
	"tasktracker/internal/middleware"
	"tasktracker/internal/repository"
	"tasktracker/internal/ws"
)

// Handler carries every dependency the route handlers need. Everything is
// constructed once in main and injected here; no package-level state.
type Handler struct {
	users    *repository.UserRepo
	tasks    *repository.TaskRepo
	issuer   *auth.Issuer
	validate *validator.Validate
	hub      *ws.Hub
}

func New(users *repository.UserRepo, tasks *repository.TaskRepo, issuer *auth.Issuer, validate *validator.Validate, hub *ws.Hub) *Handler {
	return &Handler{
		users:    users,
		tasks:    tasks,
		issuer:   issuer,
		validate: validate,
		hub:      hub,
	}
}

// callerID returns the identity the auth middleware verified for this
// request.
func callerID(c *fiber.Ctx) int {
	return c.Locals(middleware.UserIDKey).(int)
}

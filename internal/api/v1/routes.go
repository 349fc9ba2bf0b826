package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"tasktracker/internal/api/v1/handlers"
	"tasktracker/internal/auth"
	"tasktracker/internal/middleware"
	"tasktracker/internal/ws"
)

func RegisterRoutes(app *fiber.App, h *handlers.Handler, verifier *auth.Verifier, hub *ws.Hub) {
	api := app.Group("/api/v1")

	// Auth
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)
	authRoutes.Get("/me", middleware.RequireAuth(verifier), h.Me)

	// Task
	taskRoutes := api.Group("/tasks", middleware.RequireAuth(verifier))

	// Live task events; registered before /:id so "events" is not read
	// as a task id.
	taskRoutes.Use("/events", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	taskRoutes.Get("/events", websocket.New(func(conn *websocket.Conn) {
		client := ws.NewClient(conn.Locals(middleware.UserIDKey).(int), conn)
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))

	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Get("/", h.ListTasks)
	taskRoutes.Get("/:id", h.GetTask)
	taskRoutes.Put("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)
}

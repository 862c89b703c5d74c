package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nimbuslab/weathergent/internal/chat"
)

var validate = validator.New()

type chatRequest struct {
	Message string `json:"message" validate:"required"`
	// History is accepted for client compatibility and ignored by the service.
	History []string `json:"history,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *chat.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		if !svc.Available() {
			status = "unavailable"
		}
		return c.JSON(fiber.Map{"status": status})
	})

	api := app.Group("/api")

	api.Post("/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(chatResponse{
			Response: svc.Chat(c.Context(), req.Message, req.History),
		})
	})
}

package seller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Anhamd/fitbazzar/internal/apperr"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

type applyRequest struct {
	BoutiqueName string `json:"boutiqueName"`
	TradeLicense string `json:"tradeLicense"`
	Description  string `json:"description"`
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/apply-seller", h.apply)
}

func (h *Handler) apply(c *fiber.Ctx) error {
	payload := new(applyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}

	created, err := h.service.Apply(c.UserContext(), Application{
		BoutiqueName: payload.BoutiqueName,
		TradeLicense: payload.TradeLicense,
		Description:  payload.Description,
	})
	if err != nil {
		status := apperr.Status(err)
		if status >= fiber.StatusInternalServerError {
			h.log.Error("failed to store seller application", "error", err)
			return c.Status(status).JSON(fiber.Map{"error": apperr.Message(err, "internal server error")})
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": apperr.Message(err, "invalid application")})
	}

	return c.JSON(fiber.Map{"success": true, "applicationId": created.ID})
}

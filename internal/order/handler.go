package order

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Anhamd/fitbazzar/internal/apperr"
)

// Handler delegates order operations to the order service.
type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(s *Service, log *slog.Logger) *Handler {
	return &Handler{service: s, log: log}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/orders", h.createOrder)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(CreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}

	created, err := h.service.Create(c.UserContext(), *payload)
	if err != nil {
		status := apperr.Status(err)
		if status >= fiber.StatusInternalServerError {
			h.log.Error("failed to create order", "error", err)
			return c.Status(status).JSON(fiber.Map{"error": apperr.Message(err, "internal server error")})
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": apperr.Message(err, "invalid order")})
	}

	h.log.Info("order placed", "order_id", created.ID, "total", created.Total, "items", len(created.Items), "payment", created.Payment)
	return c.JSON(Receipt{Success: true, OrderID: created.ID})
}

package product

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Anhamd/fitbazzar/internal/apperr"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/products", h.getProducts)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": apperr.Message(err, "internal server error")})
	}
	return c.JSON(products)
}

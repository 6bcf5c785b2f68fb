package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler provides the health check endpoint
type Handler struct {
	db      Pinger
	logger  *slog.Logger
	timeout time.Duration
}

func NewHandler(db Pinger, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger, timeout: 2 * time.Second}
}

// Response represents the health check response
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/health", h.check)
}

func (h *Handler) check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(Response{Status: "unavailable", Timestamp: time.Now().UTC()})
	}
	return c.JSON(Response{Status: "healthy", Timestamp: time.Now().UTC()})
}

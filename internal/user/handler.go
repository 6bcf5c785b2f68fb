package user

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Anhamd/fitbazzar/internal/apperr"
)

type Handler struct {
	service *Service
	tokens  *Tokens
	log     *slog.Logger
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewHandler(service *Service, tokens *Tokens, log *slog.Logger) *Handler {
	return &Handler{service: service, tokens: tokens, log: log}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/register", h.register)
	app.Post("/api/login", h.login)
}

// RegisterProtectedRoutes mounts the routes that require a bearer token.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/me", h.tokens.Middleware(), h.getProfile)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(credentialsRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}

	if _, err := h.service.Register(c.UserContext(), payload.Email, payload.Password); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Registered successfully"})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(credentialsRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}

	user, err := h.service.Authenticate(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return h.fail(c, err)
	}

	signed, err := h.tokens.Issue(user)
	if err != nil {
		h.log.Error("failed to sign token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
	}

	h.log.Info("successful login", "email", user.Email, "user_id", user.ID)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in successfully",
		"token":   signed,
	})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	user, err := h.service.GetByID(c.UserContext(), userID)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}
	if err != nil {
		h.log.Error("failed to load profile", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

// fail writes the error in the shape the auth endpoints use: storage
// failures as {error}, everything else as {success:false, message}.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error("user request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{"error": apperr.Message(err, "internal server error")})
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": apperr.Message(err, "request failed")})
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"dispatch-console/internal/core/logger"
	"dispatch-console/internal/features/session/domain"
	"dispatch-console/internal/features/session/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler handles HTTP requests for signing staff in and out.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{service: s}
}

// RegisterRoutes mounts the session routes on router.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/session", h.SignIn)
	router.Get("/session", h.GetSession)
	router.Delete("/session", h.SignOut)
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// SignInRequest is the body of a sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the active session without its tokens.
type SessionResponse struct {
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticates a staff member and starts their dispatch console
// @Tags session
// @Accept json
// @Produce json
// @Param credentials body SignInRequest true "Email and password"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /session [post]
func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	rayID := rayID(c)

	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID,
		})
	}

	session, err := h.service.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		status := http.StatusBadGateway
		msg := err.Error()

		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusUnauthorized
			msg = "Invalid login credentials"
		default:
			logger.Get().Error("Sign in failed",
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(toResponse(session))
}

// GetSession godoc
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session := h.service.Current()
	if session == nil {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Message: "No active session",
			RayID:   rayID(c),
		})
	}
	return c.Status(http.StatusOK).JSON(toResponse(session))
}

// SignOut godoc
// @Summary Sign out
// @Description Ends the session and tears down the dispatch console
// @Tags session
// @Success 204
// @Router /session [delete]
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	if err := h.service.SignOut(c.UserContext()); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}
	return c.SendStatus(http.StatusNoContent)
}

func toResponse(s *domain.Session) SessionResponse {
	return SessionResponse{User: s.User, ExpiresAt: s.ExpiresAt}
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

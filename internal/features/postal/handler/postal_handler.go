package handler

import (
	"errors"
	"net/http"

	"dispatch-console/internal/core/logger"
	"dispatch-console/internal/features/postal/domain"
	"dispatch-console/internal/features/postal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PostalHandler handles postal-code lookups.
type PostalHandler struct {
	service *service.PostalService
}

// NewPostalHandler creates a new PostalHandler.
func NewPostalHandler(s *service.PostalService) *PostalHandler {
	return &PostalHandler{service: s}
}

// RegisterRoutes mounts the postal routes on router.
func (h *PostalHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/postal/:code", h.Lookup)
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// AddressResponse is a resolved address plus the line used to prefill forms.
type AddressResponse struct {
	domain.Address
	Line string `json:"line"`
}

// Lookup godoc
// @Summary Look up a postal code
// @Description Resolves a CEP and returns the address line used to prefill delivery forms
// @Tags postal
// @Produce json
// @Param code path string true "Postal code (CEP), with or without dash"
// @Success 200 {object} AddressResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /postal/{code} [get]
func (h *PostalHandler) Lookup(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	addr, err := h.service.Lookup(c.UserContext(), c.Params("code"))
	if err != nil {
		status := http.StatusBadGateway
		msg := "Postal code lookup failed"

		switch {
		case errors.Is(err, domain.ErrInvalidPostalCode):
			status = http.StatusBadRequest
			msg = "Invalid postal code"
		case errors.Is(err, domain.ErrPostalCodeNotFound):
			status = http.StatusNotFound
			msg = "Postal code not found"
		default:
			logger.Get().Error("Postal code lookup failed",
				zap.String("code", c.Params("code")),
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(AddressResponse{Address: *addr, Line: addr.Line()})
}

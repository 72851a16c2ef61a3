package handler

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch-console/internal/core/gateway"
	"dispatch-console/internal/core/logger"
	"dispatch-console/internal/features/dispatch/domain"
	"dispatch-console/internal/features/dispatch/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConsoleProvider returns the console of the signed-in user.
type ConsoleProvider interface {
	Current() (*service.Console, error)
}

// DispatchHandler exposes the dispatch console over HTTP.
type DispatchHandler struct {
	consoles ConsoleProvider
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(consoles ConsoleProvider) *DispatchHandler {
	return &DispatchHandler{consoles: consoles}
}

// RegisterRoutes mounts the console routes on router.
func (h *DispatchHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/deliveries", h.ListDeliveries)
	router.Post("/deliveries/refresh", h.RefreshDeliveries)
	router.Post("/deliveries", h.InsertDelivery)
	router.Put("/deliveries/:id", h.UpdateDelivery)
	router.Delete("/deliveries/:id", h.DeleteDelivery)
	router.Post("/deliveries/:id/dispatch", h.DispatchDelivery)

	router.Get("/panel", h.GetPanel)
	router.Post("/panel/insert", h.OpenInsert)
	router.Post("/panel/edit/:id", h.OpenEdit)
	router.Post("/panel/dispatch/:id", h.OpenDispatch)
	router.Post("/panel/click", h.Click)
	router.Delete("/panel", h.ClosePanel)

	router.Get("/couriers", h.ListCouriers)
	router.Post("/couriers/:id/toggle", h.ToggleCourier)

	router.Get("/people", h.SearchPeople)
	router.Post("/people", h.CreatePerson)
	router.Post("/people/:id/toggle", h.TogglePerson)
	router.Get("/people/:id/draft", h.PersonDraft)

	router.Get("/payment-methods", h.PaymentMethods)
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Fields lists the invalid form fields of a validation failure.
	Fields []string `json:"fields,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// writeError maps a console error to its status code.
func writeError(c *fiber.Ctx, err error) error {
	rayID := rayID(c)
	status := http.StatusBadGateway
	resp := ErrorResponse{Message: err.Error(), RayID: rayID}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		resp.Message = "Missing or invalid fields"
		resp.Fields = verr.Fields
	case errors.Is(err, gateway.ErrNoSession):
		status = http.StatusUnauthorized
		resp.Message = "No active session"
	case errors.Is(err, domain.ErrNotConfirmed):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDeliveryNotFound),
		errors.Is(err, domain.ErrCourierNotFound),
		errors.Is(err, domain.ErrPersonNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrCourierInactive):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPanelMismatch),
		errors.Is(err, domain.ErrAlreadyDispatched):
		status = http.StatusConflict
	default:
		logger.Get().Error("Console request failed",
			zap.String("ray_id", rayID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	c.Status(status)
	return c.JSON(resp)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

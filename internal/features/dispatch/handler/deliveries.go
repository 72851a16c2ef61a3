package handler

import (
	"context"
	"net/http"

	"dispatch-console/internal/features/dispatch/domain"
	"dispatch-console/internal/features/dispatch/ports"

	"github.com/gofiber/fiber/v2"
)

// ListDeliveries godoc
// @Summary List deliveries
// @Description Returns the synchronized delivery list filtered by customer name. When the latest refresh failed the last good list is returned with the error.
// @Tags deliveries
// @Produce json
// @Param search query string false "Customer name filter, case-insensitive"
// @Success 200 {object} ListResponse
// @Failure 401 {object} ErrorResponse
// @Router /deliveries [get]
func (h *DispatchHandler) ListDeliveries(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	state := console.Sync.Snapshot()
	list := domain.FilterByCustomer(state.Deliveries, c.Query("search"))
	return c.Status(http.StatusOK).JSON(toListResponse(state, list))
}

// RefreshDeliveries godoc
// @Summary Refresh deliveries now
// @Tags deliveries
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /deliveries/refresh [post]
func (h *DispatchHandler) RefreshDeliveries(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	if err := console.Sync.Refresh(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	state := console.Sync.Snapshot()
	return c.Status(http.StatusOK).JSON(toListResponse(state, state.Deliveries))
}

// InsertDelivery godoc
// @Summary Submit the insert panel
// @Description Creates a delivery. The insert panel must be open; it closes on success.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param delivery body domain.DeliveryDraft true "New delivery"
// @Success 201 {object} ListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /deliveries [post]
func (h *DispatchHandler) InsertDelivery(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}

	var draft domain.DeliveryDraft
	if err := c.BodyParser(&draft); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := console.SubmitInsert(c.UserContext(), draft); err != nil {
		return writeError(c, err)
	}

	state := console.Sync.Snapshot()
	return c.Status(http.StatusCreated).JSON(toListResponse(state, state.Deliveries))
}

// UpdateDelivery godoc
// @Summary Submit the edit panel
// @Description Updates a delivery. The edit panel must be open on it; it closes on success.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path int true "Delivery ID"
// @Param delivery body domain.DeliveryEdit true "Edited fields"
// @Success 200 {object} DeliveryView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /deliveries/{id} [put]
func (h *DispatchHandler) UpdateDelivery(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid delivery id")
	}

	var edit domain.DeliveryEdit
	if err := c.BodyParser(&edit); err != nil {
		return badRequest(c, "Invalid request body")
	}
	edit.ID = id

	if err := console.SubmitEdit(c.UserContext(), edit); err != nil {
		return writeError(c, err)
	}
	return h.deliveryResponse(c, console.Sync.Find, id)
}

// DispatchDelivery godoc
// @Summary Submit the dispatch panel
// @Description Assigns an active courier to the delivery and moves it to in progress. The dispatch panel must be open on it.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path int true "Delivery ID"
// @Param dispatch body DispatchRequest true "Courier"
// @Success 200 {object} DeliveryView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /deliveries/{id}/dispatch [post]
func (h *DispatchHandler) DispatchDelivery(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid delivery id")
	}

	var req DispatchRequest
	if err := c.BodyParser(&req); err != nil || req.CourierID <= 0 {
		return badRequest(c, "courier_id is required")
	}

	if err := console.SubmitDispatch(c.UserContext(), id, req.CourierID); err != nil {
		return writeError(c, err)
	}
	return h.deliveryResponse(c, console.Sync.Find, id)
}

// DeleteDelivery godoc
// @Summary Delete a delivery
// @Description Deletes a delivery. The operator's confirmation is passed as confirm=true.
// @Tags deliveries
// @Param id path int true "Delivery ID"
// @Param confirm query bool true "Operator confirmed the deletion"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /deliveries/{id} [delete]
func (h *DispatchHandler) DeleteDelivery(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid delivery id")
	}

	confirmed := c.QueryBool("confirm", false)
	confirmer := ports.ConfirmFunc(func(context.Context, string) bool { return confirmed })

	if err := console.Delete(c.UserContext(), id, confirmer); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *DispatchHandler) deliveryResponse(c *fiber.Ctx, find func(int64) (domain.Delivery, bool), id int64) error {
	d, ok := find(id)
	if !ok {
		// The write succeeded but the row left the list in a concurrent refresh.
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Status(http.StatusOK).JSON(toDeliveryView(d))
}

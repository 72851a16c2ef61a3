package handler

import (
	"fmt"
	"net/http"

	"dispatch-console/internal/features/dispatch/domain"

	"github.com/gofiber/fiber/v2"
)

// GetPanel godoc
// @Summary Current panel
// @Tags panel
// @Produce json
// @Success 200 {object} PanelResponse
// @Router /panel [get]
func (h *DispatchHandler) GetPanel(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toPanelResponse(console.Panel.Current()))
}

// OpenInsert godoc
// @Summary Open the insert panel
// @Tags panel
// @Produce json
// @Success 200 {object} PanelResponse
// @Router /panel/insert [post]
func (h *DispatchHandler) OpenInsert(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toPanelResponse(console.Panel.OpenInsert()))
}

// OpenEdit godoc
// @Summary Open the edit panel
// @Tags panel
// @Produce json
// @Param id path int true "Delivery ID"
// @Success 200 {object} PanelResponse
// @Failure 404 {object} ErrorResponse
// @Router /panel/edit/{id} [post]
func (h *DispatchHandler) OpenEdit(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid delivery id")
	}
	d, ok := console.Sync.Find(id)
	if !ok {
		return writeError(c, fmt.Errorf("delivery %d: %w", id, domain.ErrDeliveryNotFound))
	}
	return c.Status(http.StatusOK).JSON(toPanelResponse(console.Panel.OpenEdit(d)))
}

// OpenDispatch godoc
// @Summary Open the dispatch panel
// @Description Loads the courier roster on first use. If it cannot be loaded the panel is left unchanged.
// @Tags panel
// @Produce json
// @Param id path int true "Delivery ID"
// @Success 200 {object} PanelResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /panel/dispatch/{id} [post]
func (h *DispatchHandler) OpenDispatch(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid delivery id")
	}
	d, ok := console.Sync.Find(id)
	if !ok {
		return writeError(c, fmt.Errorf("delivery %d: %w", id, domain.ErrDeliveryNotFound))
	}
	p, err := console.Panel.OpenDispatch(c.UserContext(), d)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toPanelResponse(p))
}

// Click godoc
// @Summary Report a click
// @Description A click outside the open panel closes it.
// @Tags panel
// @Accept json
// @Produce json
// @Param click body ClickRequest true "Click position"
// @Success 200 {object} PanelResponse
// @Router /panel/click [post]
func (h *DispatchHandler) Click(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	var req ClickRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	console.Panel.Click(req.Inside)
	return c.Status(http.StatusOK).JSON(toPanelResponse(console.Panel.Current()))
}

// ClosePanel godoc
// @Summary Close the panel
// @Tags panel
// @Success 204
// @Router /panel [delete]
func (h *DispatchHandler) ClosePanel(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	console.Panel.Close()
	return c.SendStatus(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"dispatch-console/internal/features/dispatch/domain"

	"github.com/gofiber/fiber/v2"
)

// ListCouriers godoc
// @Summary List couriers
// @Description Returns the courier roster filtered by name, loading it on first use.
// @Tags couriers
// @Produce json
// @Param search query string false "Name filter, case-insensitive"
// @Success 200 {array} CourierView
// @Failure 502 {object} ErrorResponse
// @Router /couriers [get]
func (h *DispatchHandler) ListCouriers(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	if err := console.Roster.EnsureLoaded(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toCourierViews(console.Roster.List(c.Query("search"))))
}

// ToggleCourier godoc
// @Summary Toggle a courier's active flag
// @Description The flag flips immediately and is reverted if the store rejects it.
// @Tags couriers
// @Produce json
// @Param id path int true "Courier ID"
// @Success 200 {object} CourierView
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /couriers/{id}/toggle [post]
func (h *DispatchHandler) ToggleCourier(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid courier id")
	}
	if err := console.Roster.EnsureLoaded(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	courier, err := console.Mutator.ToggleCourierActive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toCourierView(courier))
}

// SearchPeople godoc
// @Summary Search customers
// @Description Matches name or phone. A blank search returns nothing.
// @Tags people
// @Produce json
// @Param search query string false "Name or phone"
// @Success 200 {array} PersonView
// @Failure 502 {object} ErrorResponse
// @Router /people [get]
func (h *DispatchHandler) SearchPeople(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	people, err := console.People.Search(c.UserContext(), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	views := make([]PersonView, len(people))
	for i, p := range people {
		views[i] = toPersonView(p)
	}
	return c.Status(http.StatusOK).JSON(views)
}

// CreatePerson godoc
// @Summary Create a customer
// @Tags people
// @Accept json
// @Produce json
// @Param person body domain.PersonDraft true "New customer"
// @Success 201 {object} PersonView
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /people [post]
func (h *DispatchHandler) CreatePerson(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	var draft domain.PersonDraft
	if err := c.BodyParser(&draft); err != nil {
		return badRequest(c, "Invalid request body")
	}
	p, err := console.People.Create(c.UserContext(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(toPersonView(*p))
}

// TogglePerson godoc
// @Summary Toggle a customer's active flag
// @Tags people
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} PersonView
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /people/{id}/toggle [post]
func (h *DispatchHandler) TogglePerson(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid person id")
	}
	p, err := console.Mutator.TogglePersonActive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toPersonView(p))
}

// PersonDraft godoc
// @Summary Start a delivery for a customer
// @Description Returns an insert form prefilled with the customer's address.
// @Tags people
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} domain.DeliveryDraft
// @Failure 404 {object} ErrorResponse
// @Router /people/{id}/draft [get]
func (h *DispatchHandler) PersonDraft(c *fiber.Ctx) error {
	console, err := h.consoles.Current()
	if err != nil {
		return writeError(c, err)
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid person id")
	}
	draft, err := console.People.DraftFor(c.UserContext(), id, console.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(draft)
}

// PaymentMethods godoc
// @Summary Payment methods
// @Tags deliveries
// @Produce json
// @Success 200 {array} PaymentMethodView
// @Router /payment-methods [get]
func (h *DispatchHandler) PaymentMethods(c *fiber.Ctx) error {
	views := make([]PaymentMethodView, len(domain.PaymentMethods))
	for i, m := range domain.PaymentMethods {
		views[i] = PaymentMethodView{ID: m, Label: m.Label()}
	}
	return c.Status(http.StatusOK).JSON(views)
}

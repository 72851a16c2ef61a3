package ports

import (
	"context"

	"dispatch-console/internal/features/dispatch/domain"
)

// DeliveryStore is the remote side of the delivery list.
type DeliveryStore interface {
	// List returns every delivery joined with its customer's display name, in server order.
	List(ctx context.Context) ([]domain.Delivery, error)
	// Insert stores a new delivery.
	Insert(ctx context.Context, draft domain.DeliveryDraft) error
	// Update applies edit to the delivery with edit.ID.
	Update(ctx context.Context, edit domain.DeliveryEdit) error
	// Delete removes the delivery with id. Deleting an absent id succeeds.
	Delete(ctx context.Context, id int64) error
	// Dispatch marks the delivery in-progress with courierID. With onlyPending set the
	// write only matches a pending delivery and domain.ErrAlreadyDispatched is returned otherwise.
	Dispatch(ctx context.Context, deliveryID, courierID int64, onlyPending bool) error
}

// CourierStore is the remote courier table.
type CourierStore interface {
	// ListCouriers returns every courier.
	ListCouriers(ctx context.Context) ([]domain.Courier, error)
	// SetCourierActive persists the active flag.
	SetCourierActive(ctx context.Context, id int64, active bool) error
}

// PersonStore is the remote person table.
type PersonStore interface {
	// SearchPeople matches term against name or phone, ordered by name.
	SearchPeople(ctx context.Context, term string) ([]domain.Person, error)
	// GetPerson returns the person with id or domain.ErrPersonNotFound.
	GetPerson(ctx context.Context, id int64) (*domain.Person, error)
	// CreatePerson stores draft and returns the created person.
	CreatePerson(ctx context.Context, draft domain.PersonDraft) (*domain.Person, error)
	// SetPersonActive persists the active flag.
	SetPersonActive(ctx context.Context, id int64, active bool) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

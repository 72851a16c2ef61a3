package service

import (
	"context"
	"fmt"

	"dispatch-console/internal/features/dispatch/domain"
	"dispatch-console/internal/features/dispatch/ports"

	"go.uber.org/zap"
)

// Mutator performs writes against the store and reconciles the local list
// through the Synchronizer once the store confirms them.
type Mutator struct {
	deliveries ports.DeliveryStore
	sync       *Synchronizer
	couriers   *CourierRoster
	people     *PersonDirectory
	strict     bool
	log        *zap.Logger
}

// MutatorOption configures a Mutator.
type MutatorOption func(*Mutator)

// WithStrictDispatch makes Dispatch only match pending deliveries.
func WithStrictDispatch(strict bool) MutatorOption {
	return func(m *Mutator) {
		m.strict = strict
	}
}

// NewMutator creates a Mutator.
func NewMutator(deliveries ports.DeliveryStore, sync *Synchronizer, couriers *CourierRoster, people *PersonDirectory, log *zap.Logger, opts ...MutatorOption) *Mutator {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mutator{
		deliveries: deliveries,
		sync:       sync,
		couriers:   couriers,
		people:     people,
		log:        log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Insert validates draft, stores it and refreshes the list, since the insert
// response lacks the joined customer name. A failed refresh is recorded on the
// list and does not fail the insert.
func (m *Mutator) Insert(ctx context.Context, draft domain.DeliveryDraft) error {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return err
	}
	if err := m.deliveries.Insert(ctx, draft); err != nil {
		return err
	}
	m.refreshAfterWrite(ctx)
	return nil
}

// Update validates and stores edit, then patches the local entry.
func (m *Mutator) Update(ctx context.Context, edit domain.DeliveryEdit) error {
	edit = edit.Normalize()
	if err := edit.Validate(); err != nil {
		return err
	}
	if err := m.deliveries.Update(ctx, edit); err != nil {
		return err
	}

	customerChanged := false
	m.sync.Patch(edit.ID, func(d *domain.Delivery) {
		customerChanged = d.PersonID != edit.PersonID
		*d = edit.Apply(*d)
	})
	if customerChanged {
		m.refreshAfterWrite(ctx)
	}
	return nil
}

// Delete asks confirmer first and removes the delivery once the store confirms.
func (m *Mutator) Delete(ctx context.Context, id int64, confirmer ports.Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ctx, fmt.Sprintf("Delete delivery %d?", id)) {
		return domain.ErrNotConfirmed
	}
	if err := m.deliveries.Delete(ctx, id); err != nil {
		return err
	}
	m.sync.Remove(id)
	return nil
}

// Dispatch hands the delivery to an active courier. The delivery's status is
// not checked locally; with strict dispatch the store only matches a pending one.
func (m *Mutator) Dispatch(ctx context.Context, deliveryID, courierID int64) error {
	if err := m.couriers.EnsureLoaded(ctx); err != nil {
		return err
	}
	courier, ok := m.couriers.Get(courierID)
	if !ok {
		return fmt.Errorf("courier %d: %w", courierID, domain.ErrCourierNotFound)
	}
	if !courier.Active {
		return fmt.Errorf("courier %d: %w", courierID, domain.ErrCourierInactive)
	}

	if err := m.deliveries.Dispatch(ctx, deliveryID, courierID, m.strict); err != nil {
		return err
	}
	m.sync.Patch(deliveryID, func(d *domain.Delivery) {
		d.AssignCourier(courierID)
	})
	m.log.Info("Delivery dispatched",
		zap.Int64("delivery_id", deliveryID),
		zap.Int64("courier_id", courierID),
	)
	return nil
}

// ToggleCourierActive flips a courier's active flag, rolling back on failure.
func (m *Mutator) ToggleCourierActive(ctx context.Context, id int64) (domain.Courier, error) {
	return m.couriers.Toggle(ctx, id)
}

// TogglePersonActive flips a person's active flag, rolling back on failure.
func (m *Mutator) TogglePersonActive(ctx context.Context, id int64) (domain.Person, error) {
	return m.people.Toggle(ctx, id)
}

func (m *Mutator) refreshAfterWrite(ctx context.Context) {
	if err := m.sync.Refresh(ctx); err != nil {
		m.log.Warn("Refresh after write failed", zap.Error(err))
	}
}

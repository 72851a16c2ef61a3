package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dispatch-console/internal/core/metrics"
	"dispatch-console/internal/features/dispatch/domain"
	"dispatch-console/internal/features/dispatch/ports"

	"go.uber.org/zap"
)

// PersonDirectory searches and creates customers and keeps the last results
// so active toggles can be applied optimistically.
type PersonDirectory struct {
	store   ports.PersonStore
	metrics *metrics.Metrics
	log     *zap.Logger

	mu      sync.Mutex
	results []domain.Person
}

// NewPersonDirectory creates a PersonDirectory.
func NewPersonDirectory(store ports.PersonStore, m *metrics.Metrics, log *zap.Logger) *PersonDirectory {
	if log == nil {
		log = zap.NewNop()
	}
	return &PersonDirectory{store: store, metrics: m, log: log}
}

// Search matches term against name or phone. A blank term clears the results.
func (d *PersonDirectory) Search(ctx context.Context, term string) ([]domain.Person, error) {
	people, err := d.store.SearchPeople(ctx, term)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.results = append([]domain.Person(nil), people...)
	d.mu.Unlock()
	return people, nil
}

// Results returns a copy of the last search results.
func (d *PersonDirectory) Results() []domain.Person {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Person{}, d.results...)
}

// Create validates and stores a new person and adds it to the results.
func (d *PersonDirectory) Create(ctx context.Context, draft domain.PersonDraft) (*domain.Person, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	p, err := d.store.CreatePerson(ctx, draft)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.results = append(d.results, *p)
	d.mu.Unlock()
	return p, nil
}

// Get returns the person with id, from the results when present.
func (d *PersonDirectory) Get(ctx context.Context, id int64) (*domain.Person, error) {
	d.mu.Lock()
	for _, p := range d.results {
		if p.ID == id {
			d.mu.Unlock()
			return &p, nil
		}
	}
	d.mu.Unlock()
	return d.store.GetPerson(ctx, id)
}

// DraftFor starts a delivery for person id, prefilled with their address.
func (d *PersonDirectory) DraftFor(ctx context.Context, id int64, createdBy string) (domain.DeliveryDraft, error) {
	p, err := d.Get(ctx, id)
	if err != nil {
		return domain.DeliveryDraft{}, err
	}
	return domain.DraftFromPerson(*p, createdBy), nil
}

// Toggle flips the person's active flag, optimistically when the person is in
// the results, and reverts the local flip when the store fails.
func (d *PersonDirectory) Toggle(ctx context.Context, id int64) (domain.Person, error) {
	flipped, ok := d.setActive(id, nil)
	if !ok {
		p, err := d.store.GetPerson(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrPersonNotFound) {
				return domain.Person{}, err
			}
			return domain.Person{}, fmt.Errorf("toggle person %d: %w", id, err)
		}
		flipped = *p
		flipped.Active = !flipped.Active
	}

	if err := d.store.SetPersonActive(ctx, id, flipped.Active); err != nil {
		if ok {
			previous := !flipped.Active
			flipped, _ = d.setActive(id, &previous)
			d.metrics.ObserveRollback("person")
			d.log.Warn("Person toggle reverted", zap.Int64("person_id", id), zap.Error(err))
		} else {
			flipped.Active = !flipped.Active
		}
		return flipped, err
	}
	return flipped, nil
}

func (d *PersonDirectory) setActive(id int64, value *bool) (domain.Person, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.results {
		if d.results[i].ID == id {
			if value != nil {
				d.results[i].Active = *value
			} else {
				d.results[i].Active = !d.results[i].Active
			}
			return d.results[i], true
		}
	}
	return domain.Person{}, false
}

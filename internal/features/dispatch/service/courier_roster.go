package service

import (
	"context"
	"fmt"
	"sync"

	"dispatch-console/internal/core/metrics"
	"dispatch-console/internal/features/dispatch/domain"
	"dispatch-console/internal/features/dispatch/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CourierRoster is the local courier list. It loads lazily, once, and applies
// active-flag toggles optimistically.
type CourierRoster struct {
	store   ports.CourierStore
	metrics *metrics.Metrics
	log     *zap.Logger
	group   singleflight.Group

	mu       sync.RWMutex
	couriers []domain.Courier
	loaded   bool
}

// NewCourierRoster creates an empty roster.
func NewCourierRoster(store ports.CourierStore, m *metrics.Metrics, log *zap.Logger) *CourierRoster {
	if log == nil {
		log = zap.NewNop()
	}
	return &CourierRoster{store: store, metrics: m, log: log}
}

// EnsureLoaded loads the roster if it has never loaded. Concurrent callers share one load.
func (r *CourierRoster) EnsureLoaded(ctx context.Context) error {
	if r.Loaded() {
		return nil
	}
	_, err, _ := r.group.Do("couriers", func() (any, error) {
		if r.Loaded() {
			return nil, nil
		}
		return nil, r.Reload(ctx)
	})
	return err
}

// Reload replaces the roster with the store's current list.
func (r *CourierRoster) Reload(ctx context.Context) error {
	couriers, err := r.store.ListCouriers(ctx)
	if err != nil {
		return fmt.Errorf("load couriers: %w", err)
	}
	r.mu.Lock()
	r.couriers = couriers
	r.loaded = true
	r.mu.Unlock()
	return nil
}

// Loaded reports whether the roster has loaded at least once.
func (r *CourierRoster) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// List returns the couriers whose name contains term.
func (r *CourierRoster) List(term string) []domain.Courier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.FilterCouriers(r.couriers, term)
}

// Get returns the courier with id.
func (r *CourierRoster) Get(id int64) (domain.Courier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.couriers {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Courier{}, false
}

// Toggle flips the courier's active flag locally, persists it and reverts the
// flip when the store fails.
func (r *CourierRoster) Toggle(ctx context.Context, id int64) (domain.Courier, error) {
	flipped, ok := r.setActive(id, nil)
	if !ok {
		return domain.Courier{}, fmt.Errorf("courier %d: %w", id, domain.ErrCourierNotFound)
	}

	if err := r.store.SetCourierActive(ctx, id, flipped.Active); err != nil {
		previous := !flipped.Active
		reverted, _ := r.setActive(id, &previous)
		r.metrics.ObserveRollback("courier")
		r.log.Warn("Courier toggle reverted", zap.Int64("courier_id", id), zap.Error(err))
		return reverted, err
	}
	return flipped, nil
}

// setActive sets the flag to *value, or flips it when value is nil.
func (r *CourierRoster) setActive(id int64, value *bool) (domain.Courier, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.couriers {
		if r.couriers[i].ID == id {
			if value != nil {
				r.couriers[i].Active = *value
			} else {
				r.couriers[i].Active = !r.couriers[i].Active
			}
			return r.couriers[i], true
		}
	}
	return domain.Courier{}, false
}

package service

import (
	"context"
	"sync"
	"time"

	"dispatch-console/internal/core/metrics"
	"dispatch-console/internal/features/dispatch/domain"
	"dispatch-console/internal/features/dispatch/ports"

	"go.uber.org/zap"
)

// DefaultRefreshInterval is the polling period when none is configured.
const DefaultRefreshInterval = 5 * time.Second

// ListListener receives a copy of the list after every applied change.
type ListListener func(domain.ListState)

// Synchronizer owns the local delivery list. It polls the store, applies every
// response on arrival and accepts confirmed patches from the Mutator.
//
// Refreshes may overlap; whichever response arrives last is applied. Responses
// arriving after Stop are discarded. Listeners run in apply order and must not
// call Patch, Remove or Refresh synchronously.
type Synchronizer struct {
	store    ports.DeliveryStore
	interval time.Duration
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time

	mu        sync.RWMutex
	state     domain.ListState
	epoch     uint64
	stopped   bool
	listeners map[int]ListListener
	nextID    int

	// notifyMu keeps apply and notify in the same order.
	notifyMu sync.Mutex

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSynchronizer creates a Synchronizer polling store every interval.
func NewSynchronizer(store ports.DeliveryStore, interval time.Duration, m *metrics.Metrics, log *zap.Logger) *Synchronizer {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Synchronizer{
		store:     store,
		interval:  interval,
		metrics:   m,
		log:       log,
		now:       time.Now,
		state:     domain.ListState{Deliveries: []domain.Delivery{}},
		listeners: make(map[int]ListListener),
	}
}

// Start refreshes immediately and then every interval until Stop or ctx is done.
// Starting a running Synchronizer does nothing.
func (s *Synchronizer) Start(ctx context.Context) {
	s.startPolling(ctx, true)
}

func (s *Synchronizer) startPolling(ctx context.Context, immediate bool) {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.cancel != nil {
		return
	}

	s.mu.Lock()
	s.stopped = false
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.run(ctx, done, immediate)
}

func (s *Synchronizer) run(ctx context.Context, done chan struct{}, immediate bool) {
	defer close(done)

	if immediate {
		s.pollOnce(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx)
		}
	}
}

func (s *Synchronizer) pollOnce(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
		s.log.Warn("Delivery list refresh failed", zap.Error(err))
	}
}

// Stop cancels the polling loop, waits for it to exit and discards any
// response still in flight.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.epoch++
	s.mu.Unlock()

	s.loopMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.loopMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Refresh fetches the list and applies the result. On failure the previous
// list is kept and the error is recorded in the state as well as returned.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	deliveries, err := s.store.List(ctx)

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.stopped || s.epoch != epoch {
		s.mu.Unlock()
		s.metrics.ObserveRefresh(metrics.ResultDiscarded, 0)
		return err
	}
	if err != nil {
		s.state.Err = err
	} else {
		s.state = domain.ListState{
			Deliveries:  deliveries,
			RefreshedAt: s.now(),
		}
	}
	snapshot := s.state.Clone()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if err != nil {
		s.metrics.ObserveRefresh(metrics.ResultError, 0)
	} else {
		s.metrics.ObserveRefresh(metrics.ResultSuccess, len(snapshot.Deliveries))
	}
	for _, fn := range listeners {
		fn(snapshot)
	}
	return err
}

// Snapshot returns a copy of the current list state.
func (s *Synchronizer) Snapshot() domain.ListState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Filtered returns the deliveries whose customer name contains term.
func (s *Synchronizer) Filtered(term string) []domain.Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterByCustomer(s.state.Deliveries, term)
}

// Find returns a copy of the delivery with id.
func (s *Synchronizer) Find(id int64) (domain.Delivery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Find(id)
}

// Subscribe registers fn and returns its unsubscribe func.
func (s *Synchronizer) Subscribe(fn ListListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Patch applies fn to the delivery with id after a confirmed write.
// It reports whether the delivery was found.
func (s *Synchronizer) Patch(id int64, fn func(*domain.Delivery)) bool {
	return s.mutate(func(list []domain.Delivery) ([]domain.Delivery, bool) {
		for i := range list {
			if list[i].ID == id {
				fn(&list[i])
				return list, true
			}
		}
		return list, false
	})
}

// Remove drops the delivery with id after a confirmed delete. Unknown ids are a no-op.
func (s *Synchronizer) Remove(id int64) bool {
	return s.mutate(func(list []domain.Delivery) ([]domain.Delivery, bool) {
		for i := range list {
			if list[i].ID == id {
				return append(list[:i], list[i+1:]...), true
			}
		}
		return list, false
	})
}

// mutate runs fn on a private copy of the list and swaps it in when fn reports a change.
func (s *Synchronizer) mutate(fn func([]domain.Delivery) ([]domain.Delivery, bool)) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	next, changed := fn(s.state.Clone().Deliveries)
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.state.Deliveries = next
	snapshot := s.state.Clone()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
	return true
}

func (s *Synchronizer) listenersLocked() []ListListener {
	out := make([]ListListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

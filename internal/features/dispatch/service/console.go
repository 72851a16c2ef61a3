package service

import (
	"context"
	"sync"
	"time"

	"dispatch-console/internal/core/metrics"
	"dispatch-console/internal/features/dispatch/domain"
	"dispatch-console/internal/features/dispatch/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stores groups the remote stores a Console works against.
type Stores struct {
	Deliveries ports.DeliveryStore
	Couriers   ports.CourierStore
	People     ports.PersonStore
}

// Options configures a Console.
type Options struct {
	RefreshInterval time.Duration
	StrictDispatch  bool
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
}

// Console is one dispatch view: a synchronized list, a panel and the writes
// made through it, bound to the user who opened it.
type Console struct {
	ID     uuid.UUID
	UserID string

	Sync    *Synchronizer
	Panel   *PanelController
	Mutator *Mutator
	Roster  *CourierRoster
	People  *PersonDirectory

	log *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// NewConsole wires a Console for userID.
func NewConsole(stores Stores, userID string, opts Options) *Console {
	id := uuid.New()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("console_id", id.String()), zap.String("user_id", userID))

	syncer := NewSynchronizer(stores.Deliveries, opts.RefreshInterval, opts.Metrics, log.Named("sync"))
	roster := NewCourierRoster(stores.Couriers, opts.Metrics, log.Named("couriers"))
	people := NewPersonDirectory(stores.People, opts.Metrics, log.Named("people"))

	return &Console{
		ID:      id,
		UserID:  userID,
		Sync:    syncer,
		Panel:   NewPanelController(roster),
		Mutator: NewMutator(stores.Deliveries, syncer, roster, people, log.Named("mutator"), WithStrictDispatch(opts.StrictDispatch)),
		Roster:  roster,
		People:  people,
		log:     log,
	}
}

// Start loads the list and the courier roster in parallel, then polls until
// Stop. Warm-up failures are logged; the list keeps its error until the next
// successful refresh.
func (c *Console) Start(ctx context.Context) {
	c.mu.Lock()
	if c.stopped || c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	// The loads are independent; a roster failure must not cancel the list.
	var g errgroup.Group
	g.Go(func() error { return c.Sync.Refresh(ctx) })
	g.Go(func() error { return c.Roster.EnsureLoaded(ctx) })
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		c.log.Warn("Console warm-up incomplete", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.Sync.startPolling(ctx, false)
	c.log.Info("Console started")
}

// Stop tears the console down; late responses are discarded.
func (c *Console) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	c.Sync.Stop()
	c.Panel.Close()
	c.log.Info("Console stopped")
}

// SubmitInsert submits the insert panel.
func (c *Console) SubmitInsert(ctx context.Context, draft domain.DeliveryDraft) error {
	p := c.Panel.Current()
	if p.Kind != domain.PanelInserting {
		return domain.ErrPanelMismatch
	}
	if draft.CreatedBy == "" {
		draft.CreatedBy = c.UserID
	}
	err := c.Mutator.Insert(ctx, draft)
	c.Panel.Resolve(p.Seq, err)
	return err
}

// SubmitEdit submits the edit panel; it must be open on edit.ID.
func (c *Console) SubmitEdit(ctx context.Context, edit domain.DeliveryEdit) error {
	p := c.Panel.Current()
	if !p.Targets(domain.PanelEditing, edit.ID) {
		return domain.ErrPanelMismatch
	}
	err := c.Mutator.Update(ctx, edit)
	c.Panel.Resolve(p.Seq, err)
	return err
}

// SubmitDispatch submits the dispatch panel; it must be open on deliveryID.
func (c *Console) SubmitDispatch(ctx context.Context, deliveryID, courierID int64) error {
	p := c.Panel.Current()
	if !p.Targets(domain.PanelDispatching, deliveryID) {
		return domain.ErrPanelMismatch
	}
	err := c.Mutator.Dispatch(ctx, deliveryID, courierID)
	c.Panel.Resolve(p.Seq, err)
	return err
}

// Delete deletes a delivery after confirmation and closes a panel targeting it.
func (c *Console) Delete(ctx context.Context, id int64, confirmer ports.Confirmer) error {
	if err := c.Mutator.Delete(ctx, id, confirmer); err != nil {
		return err
	}
	if p := c.Panel.Current(); p.Target != nil && p.Target.ID == id {
		c.Panel.Resolve(p.Seq, nil)
	}
	return nil
}

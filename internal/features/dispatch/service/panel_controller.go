package service

import (
	"context"
	"sync"

	"dispatch-console/internal/features/dispatch/domain"
)

// CourierLoader loads the courier roster when it has never been loaded.
type CourierLoader interface {
	EnsureLoaded(ctx context.Context) error
}

// PanelController tracks the single open panel.
type PanelController struct {
	couriers CourierLoader

	mu    sync.Mutex
	panel domain.Panel
	seq   uint64
}

// NewPanelController creates a closed PanelController.
func NewPanelController(couriers CourierLoader) *PanelController {
	return &PanelController{couriers: couriers}
}

// Current returns a copy of the panel state.
func (p *PanelController) Current() domain.Panel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panel.Clone()
}

// OpenInsert opens the insert panel, replacing any open panel.
func (p *PanelController) OpenInsert() domain.Panel {
	return p.open(domain.PanelInserting, nil)
}

// OpenEdit opens the edit panel for d, replacing any open panel.
func (p *PanelController) OpenEdit(d domain.Delivery) domain.Panel {
	return p.open(domain.PanelEditing, &d)
}

// OpenDispatch opens the dispatch panel for d once the courier roster is
// available. When the roster cannot be loaded the panel state is left as it was.
func (p *PanelController) OpenDispatch(ctx context.Context, d domain.Delivery) (domain.Panel, error) {
	if err := p.couriers.EnsureLoaded(ctx); err != nil {
		return p.Current(), err
	}
	return p.open(domain.PanelDispatching, &d), nil
}

func (p *PanelController) open(kind domain.PanelKind, target *domain.Delivery) domain.Panel {
	p.mu.Lock()
	defer p.mu.Unlock()

	if target != nil {
		t := target.Clone()
		target = &t
	}
	p.seq++
	p.panel = domain.Panel{Kind: kind, Target: target, Seq: p.seq}
	return p.panel.Clone()
}

// Close closes whatever panel is open.
func (p *PanelController) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panel = domain.Panel{Seq: p.panel.Seq}
}

// Click handles a click; one outside the open panel closes it. It reports
// whether a panel was closed.
func (p *PanelController) Click(inside bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if inside || !p.panel.IsOpen() {
		return false
	}
	p.panel = domain.Panel{Seq: p.panel.Seq}
	return true
}

// Resolve records the outcome of a submission made against opening seq.
// Success closes the panel; failure keeps it open with err. Outcomes for an
// opening that has since been replaced or closed are ignored.
func (p *PanelController) Resolve(seq uint64, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.panel.IsOpen() || p.panel.Seq != seq {
		return false
	}
	if err != nil {
		p.panel.Err = err
		return true
	}
	p.panel = domain.Panel{Seq: p.panel.Seq}
	return true
}

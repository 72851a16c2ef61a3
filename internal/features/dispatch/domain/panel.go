package domain

// PanelKind is which form, if any, is open.
type PanelKind int

const (
	PanelClosed PanelKind = iota
	PanelInserting
	PanelEditing
	PanelDispatching
)

func (k PanelKind) String() string {
	switch k {
	case PanelInserting:
		return "inserting"
	case PanelEditing:
		return "editing"
	case PanelDispatching:
		return "dispatching"
	default:
		return "closed"
	}
}

// Panel is the single open form. Seq identifies the opening: every open bumps it,
// so outcomes of submissions made against an earlier opening can be told apart.
type Panel struct {
	Kind   PanelKind
	Target *Delivery
	Seq    uint64
	Err    error
}

// IsOpen reports whether a panel is shown.
func (p Panel) IsOpen() bool {
	return p.Kind != PanelClosed
}

// Targets reports whether the panel is of kind and targets delivery id.
func (p Panel) Targets(kind PanelKind, id int64) bool {
	return p.Kind == kind && p.Target != nil && p.Target.ID == id
}

// Clone returns a copy whose target is not shared.
func (p Panel) Clone() Panel {
	if p.Target != nil {
		t := p.Target.Clone()
		p.Target = &t
	}
	return p
}

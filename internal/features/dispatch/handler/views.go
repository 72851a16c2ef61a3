package handler

import (
	"time"

	"dispatch-console/internal/features/dispatch/domain"
)

// DeliveryView is a delivery with its display labels.
type DeliveryView struct {
	domain.Delivery
	ValueLabel   string `json:"valor"`
	PaymentLabel string `json:"forma_pgto"`
	StatusLabel  string `json:"situacao"`
}

// ListResponse is the filtered delivery list.
type ListResponse struct {
	Deliveries  []DeliveryView `json:"deliveries"`
	Total       int            `json:"total"`
	RefreshedAt *time.Time     `json:"refreshed_at,omitempty"`
	// Error is set when the latest refresh failed; Deliveries then holds the last good list.
	Error string `json:"error,omitempty"`
}

// PanelResponse is the open panel.
type PanelResponse struct {
	Kind   string        `json:"kind"`
	Seq    uint64        `json:"seq"`
	Target *DeliveryView `json:"target,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// CourierView is a courier with masked phone and chat link.
type CourierView struct {
	domain.Courier
	PhoneLabel   string `json:"telefone"`
	WhatsAppLink string `json:"whatsapp"`
}

// PersonView is a person with the label used in search results.
type PersonView struct {
	domain.Person
	Label string `json:"label"`
}

// PaymentMethodView is one option of the payment selector.
type PaymentMethodView struct {
	ID    domain.PaymentMethod `json:"id"`
	Label string               `json:"label"`
}

// DispatchRequest is the body of a dispatch.
type DispatchRequest struct {
	CourierID int64 `json:"courier_id"`
}

// ClickRequest reports where the operator clicked.
type ClickRequest struct {
	Inside bool `json:"inside"`
}

func toDeliveryView(d domain.Delivery) DeliveryView {
	return DeliveryView{
		Delivery:     d,
		ValueLabel:   domain.FormatBRL(d.Value),
		PaymentLabel: d.PaymentMethod.Label(),
		StatusLabel:  d.Status.String(),
	}
}

func toListResponse(state domain.ListState, list []domain.Delivery) ListResponse {
	views := make([]DeliveryView, len(list))
	for i, d := range list {
		views[i] = toDeliveryView(d)
	}
	resp := ListResponse{Deliveries: views, Total: len(views)}
	if !state.RefreshedAt.IsZero() {
		at := state.RefreshedAt
		resp.RefreshedAt = &at
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}
	return resp
}

func toPanelResponse(p domain.Panel) PanelResponse {
	resp := PanelResponse{Kind: p.Kind.String(), Seq: p.Seq}
	if p.Target != nil {
		v := toDeliveryView(*p.Target)
		resp.Target = &v
	}
	if p.Err != nil {
		resp.Error = p.Err.Error()
	}
	return resp
}

func toCourierViews(couriers []domain.Courier) []CourierView {
	views := make([]CourierView, len(couriers))
	for i, c := range couriers {
		views[i] = toCourierView(c)
	}
	return views
}

func toCourierView(c domain.Courier) CourierView {
	return CourierView{Courier: c, PhoneLabel: c.MaskedPhone(), WhatsAppLink: c.WhatsAppLink()}
}

func toPersonView(p domain.Person) PersonView {
	return PersonView{Person: p, Label: p.Label()}
}

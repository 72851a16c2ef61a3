package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DeliveryDraft is the insert form. Value is nil until typed.
type DeliveryDraft struct {
	PersonID       int64            `json:"id_pessoa"`
	PickupAddress  string           `json:"endereco_retirada"`
	DropoffAddress string           `json:"endereco_entrega"`
	Description    string           `json:"descricao"`
	Value          *decimal.Decimal `json:"vr_calculado"`
	PaymentMethod  PaymentMethod    `json:"id_forma_pgto"`
	CreatedBy      string           `json:"id_usuario_inclusao,omitempty"`
}

// Normalize trims the text fields.
func (d DeliveryDraft) Normalize() DeliveryDraft {
	d.PickupAddress = strings.TrimSpace(d.PickupAddress)
	d.DropoffAddress = strings.TrimSpace(d.DropoffAddress)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Validate reports every required field that is empty or invalid.
func (d DeliveryDraft) Validate() error {
	var f fieldErrors
	f.require(strings.TrimSpace(d.PickupAddress) != "", "endereco_retirada")
	f.require(strings.TrimSpace(d.DropoffAddress) != "", "endereco_entrega")
	f.require(d.PersonID > 0, "id_pessoa")
	f.require(strings.TrimSpace(d.Description) != "", "descricao")
	f.require(d.Value != nil && !d.Value.IsNegative(), "vr_calculado")
	f.require(d.PaymentMethod.Valid(), "id_forma_pgto")
	return f.err()
}

// DeliveryEdit is the edit form. Optional fields are only sent when set.
type DeliveryEdit struct {
	ID             int64            `json:"-"`
	PersonID       int64            `json:"id_pessoa"`
	PickupAddress  string           `json:"endereco_retirada"`
	DropoffAddress string           `json:"endereco_entrega"`
	Description    *string          `json:"descricao,omitempty"`
	Value          *decimal.Decimal `json:"vr_calculado,omitempty"`
	PaymentMethod  *PaymentMethod   `json:"id_forma_pgto,omitempty"`
}

// Normalize trims the text fields.
func (e DeliveryEdit) Normalize() DeliveryEdit {
	e.PickupAddress = strings.TrimSpace(e.PickupAddress)
	e.DropoffAddress = strings.TrimSpace(e.DropoffAddress)
	if e.Description != nil {
		desc := strings.TrimSpace(*e.Description)
		e.Description = &desc
	}
	return e
}

// Validate reports invalid fields.
func (e DeliveryEdit) Validate() error {
	var f fieldErrors
	f.require(e.ID > 0, "id")
	f.require(strings.TrimSpace(e.PickupAddress) != "", "endereco_retirada")
	f.require(strings.TrimSpace(e.DropoffAddress) != "", "endereco_entrega")
	f.require(e.PersonID > 0, "id_pessoa")
	if e.Description != nil {
		f.require(strings.TrimSpace(*e.Description) != "", "descricao")
	}
	if e.Value != nil {
		f.require(!e.Value.IsNegative(), "vr_calculado")
	}
	if e.PaymentMethod != nil {
		f.require(e.PaymentMethod.Valid(), "id_forma_pgto")
	}
	return f.err()
}

// Apply returns d with the edit applied. A changed customer clears the joined
// display name until the next refresh.
func (e DeliveryEdit) Apply(d Delivery) Delivery {
	if d.PersonID != e.PersonID {
		d.CustomerName = ""
	}
	d.PersonID = e.PersonID
	d.PickupAddress = e.PickupAddress
	d.DropoffAddress = e.DropoffAddress
	if e.Description != nil {
		d.Description = *e.Description
	}
	if e.Value != nil {
		d.Value = *e.Value
	}
	if e.PaymentMethod != nil {
		d.PaymentMethod = *e.PaymentMethod
	}
	return d
}

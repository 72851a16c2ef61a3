package domain

import (
	"fmt"
	"strings"
)

// Person is a customer that deliveries are made for.
type Person struct {
	ID         int64  `json:"idpessoa"`
	Name       string `json:"nome"`
	Phone      string `json:"celular"`
	Email      string `json:"email"`
	Address    string `json:"endereco"`
	PostalCode string `json:"cep"`
	Active     bool   `json:"ativo"`
}

// Label is how a person is listed in search results.
func (p Person) Label() string {
	return fmt.Sprintf("%s | (%s)", p.Name, p.Phone)
}

// PersonDraft is an inline person creation.
type PersonDraft struct {
	Name       string `json:"nome"`
	Phone      string `json:"celular"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"endereco"`
	PostalCode string `json:"cep,omitempty"`
}

// Normalize trims every field.
func (d PersonDraft) Normalize() PersonDraft {
	return PersonDraft{
		Name:       strings.TrimSpace(d.Name),
		Phone:      strings.TrimSpace(d.Phone),
		Email:      strings.TrimSpace(d.Email),
		Address:    strings.TrimSpace(d.Address),
		PostalCode: strings.TrimSpace(d.PostalCode),
	}
}

// Validate checks the fields a new person needs.
func (d PersonDraft) Validate() error {
	var f fieldErrors
	f.require(strings.TrimSpace(d.Name) != "", "nome")
	f.require(strings.TrimSpace(d.Phone) != "", "celular")
	return f.err()
}

// DraftFromPerson starts a delivery for p, prefilling both addresses with p's address.
func DraftFromPerson(p Person, createdBy string) DeliveryDraft {
	return DeliveryDraft{
		PersonID:       p.ID,
		PickupAddress:  p.Address,
		DropoffAddress: p.Address,
		CreatedBy:      createdBy,
	}
}

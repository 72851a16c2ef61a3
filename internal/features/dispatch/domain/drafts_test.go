package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() DeliveryDraft {
	v := decimal.RequireFromString("12.50")
	return DeliveryDraft{
		PersonID:       3,
		PickupAddress:  "Rua A, 10",
		DropoffAddress: "Rua B, 20",
		Description:    "Caixa",
		Value:          &v,
		PaymentMethod:  PaymentCash,
	}
}

func TestDeliveryDraft_Validate(t *testing.T) {
	require.NoError(t, validDraft().Validate())

	d := validDraft()
	d.Description = "   "
	err := d.Validate()
	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"descricao"}, vErr.Fields)

	err = DeliveryDraft{}.Validate()
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		"endereco_retirada", "endereco_entrega", "id_pessoa", "descricao", "vr_calculado", "id_forma_pgto",
	}, vErr.Fields)
	assert.Contains(t, err.Error(), "descricao")
}

func TestDeliveryDraft_ZeroValueAllowed(t *testing.T) {
	d := validDraft()
	zero := decimal.Zero
	d.Value = &zero
	assert.NoError(t, d.Validate())

	neg := decimal.RequireFromString("-1")
	d.Value = &neg
	assert.ErrorIs(t, d.Validate(), ErrValidation)
}

func TestDeliveryEdit_ValidateAndApply(t *testing.T) {
	desc := "Envelope"
	edit := DeliveryEdit{ID: 1, PersonID: 3, PickupAddress: "Rua C", DropoffAddress: "Rua D", Description: &desc}
	require.NoError(t, edit.Validate())

	before := Delivery{ID: 1, PersonID: 3, CustomerName: "Ana Silva", Description: "Caixa", PaymentMethod: PaymentTab}
	updated := edit.Apply(before)
	assert.Equal(t, "Ana Silva", updated.CustomerName)
	assert.Equal(t, "Rua C", updated.PickupAddress)
	assert.Equal(t, "Envelope", updated.Description)
	assert.Equal(t, PaymentTab, updated.PaymentMethod)

	edit.PersonID = 4
	assert.Empty(t, edit.Apply(before).CustomerName)

	bad := PaymentMethod(9)
	edit.PaymentMethod = &bad
	edit.PickupAddress = ""
	var vErr *ValidationError
	require.ErrorAs(t, edit.Validate(), &vErr)
	assert.Equal(t, []string{"endereco_retirada", "id_forma_pgto"}, vErr.Fields)
}

func TestPersonDraft(t *testing.T) {
	assert.ErrorIs(t, PersonDraft{Name: "Ana"}.Validate(), ErrValidation)
	assert.NoError(t, PersonDraft{Name: "Ana", Phone: "11987654321"}.Validate())

	n := PersonDraft{Name: " Ana ", Phone: " 119 "}.Normalize()
	assert.Equal(t, "Ana", n.Name)
	assert.Equal(t, "119", n.Phone)
}

func TestDraftFromPerson(t *testing.T) {
	p := Person{ID: 3, Name: "Ana Silva", Phone: "11987654321", Address: "Rua A, 10"}
	d := DraftFromPerson(p, "u1")

	assert.Equal(t, int64(3), d.PersonID)
	assert.Equal(t, "Rua A, 10", d.PickupAddress)
	assert.Equal(t, "Rua A, 10", d.DropoffAddress)
	assert.Equal(t, "u1", d.CreatedBy)
	assert.Equal(t, "Ana Silva | (11987654321)", p.Label())
}

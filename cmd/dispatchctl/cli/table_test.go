package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"dispatch-console/internal/features/dispatch/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDeliveries(t *testing.T) {
	state := domain.ListState{
		Deliveries: []domain.Delivery{
			{ID: 1, CustomerName: "Ana Silva", Value: decimal.RequireFromString("1234.5"), PaymentMethod: domain.PaymentCash},
			{ID: 2, CustomerName: "Bruno", Value: decimal.RequireFromString("10")},
		},
		RefreshedAt: time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC),
		Err:         errors.New("timeout"),
	}

	var buf bytes.Buffer
	require.NoError(t, renderDeliveries(&buf, state, "ana"))

	out := buf.String()
	assert.Contains(t, out, "refresh failed: timeout")
	assert.Contains(t, out, "14:30:00")
	assert.Contains(t, out, "Ana Silva")
	assert.Contains(t, out, "R$ 1.234,50")
	assert.Contains(t, out, "Dinheiro")
	assert.NotContains(t, out, "Bruno")
}

func TestRenderCouriers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderCouriers(&buf, []domain.Courier{
		{ID: 7, Name: "Carlos", Phone: "11987654321", Active: true},
	}))

	out := buf.String()
	assert.Contains(t, out, "Carlos")
	assert.Contains(t, out, "(11) 98765-4321")
	assert.Contains(t, out, "sim")
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dispatchctl dev\n", buf.String())
}

package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/receipt"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"999":       "999.00",
		"25000":     "25,000.00",
		"1234567.5": "1,234,567.50",
		"-1500.5":   "-1,500.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "2026-03-01", datePart("2026-03-01T10:00:00.000Z"))
	assert.Equal(t, "2026", datePart("2026"))
	assert.Equal(t, "abcdefgh", shortID("abcdefghijkl"))
	assert.Equal(t, "-", nonEmpty("", "-"))
}

func TestGenerateReceiptPDF(t *testing.T) {
	order := entity.Order{
		ID:           "3f1c9a7e-0000-0000-0000-000000000001",
		CustomerName: "Priya",
		Status:       entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{Name: "Blouse", Quantity: 2, UnitPrice: decimal.NewFromInt(350)},
		},
		CreatedAt: "2026-03-01T10:00:00.000Z",
	}
	order.Total = entity.ItemsTotal(order.Items)
	order.Advance = decimal.NewFromInt(300)
	order.Recompute()

	out, err := NewMarotoPDFGenerator().GenerateReceiptPDF(context.Background(), receipt.Receipt{
		TenantName: "Sewvee",
		Order:      order,
		Customer:   &entity.Customer{Name: "Priya", DisplayID: "SEW-00001"},
		Payments: []entity.Payment{
			{Amount: decimal.NewFromInt(300), Type: entity.PaymentTypeAdvance, Mode: "Cash", Date: "2026-03-01"},
		},
		IssuedAt: "2026-03-02T09:00:00.000Z",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

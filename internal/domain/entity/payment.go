package entity

import (
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
)

// Tipos de pago.
const (
	PaymentTypeAdvance = "Advance" // creado junto con el pedido
	PaymentTypePayment = "Payment"
)

// Campos de Payment.
const (
	FieldAmount = "amount"
	FieldMode   = "mode"
	FieldDate   = "date"
	FieldType   = "type"
)

// Payment pago aplicado a un pedido. La suma de los pagos vivos de un pedido es su Advance.
type Payment struct {
	ID         string
	OwnerID    string
	OrderID    string
	CustomerID string
	Amount     decimal.Decimal
	Mode       string // canal libre: efectivo, UPI, tarjeta...
	Date       string
	Type       string
	Notes      string
	CreatedAt  string
}

// PaymentFromDocument mapea un documento remoto a Payment.
func PaymentFromDocument(doc document.Document) Payment {
	f := doc.Fields
	return Payment{
		ID:         doc.ID,
		OwnerID:    f.String(FieldOwnerID),
		OrderID:    f.String(FieldOrderID),
		CustomerID: f.String(FieldCustomerID),
		Amount:     f.Decimal(FieldAmount),
		Mode:       f.String(FieldMode),
		Date:       f.String(FieldDate),
		Type:       f.String(FieldType),
		Notes:      f.String(FieldNotes),
		CreatedAt:  f.String(FieldCreatedAt),
	}
}

// Fields serializa el pago completo (creación).
func (p Payment) Fields() document.Fields {
	return document.Fields{
		FieldOwnerID:    p.OwnerID,
		FieldOrderID:    p.OrderID,
		FieldCustomerID: p.CustomerID,
		FieldAmount:     p.Amount,
		FieldMode:       p.Mode,
		FieldDate:       p.Date,
		FieldType:       p.Type,
		FieldNotes:      p.Notes,
		FieldCreatedAt:  p.CreatedAt,
	}
}

// SumAmounts suma los importes de una lista de pagos.
func SumAmounts(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

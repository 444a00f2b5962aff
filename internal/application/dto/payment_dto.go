package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

// CreatePaymentRequest body para POST /api/payments.
type CreatePaymentRequest struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id,omitempty"` // opcional; si se envía debe ser el cliente del pedido
	Amount     decimal.Decimal `json:"amount"`
	Mode       string          `json:"mode,omitempty"`
	Date       string          `json:"date,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// UpdatePaymentRequest body para PATCH /api/payments/:id.
// Sólo un cambio de Amount propaga la diferencia al pedido y al cliente.
type UpdatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Mode   *string          `json:"mode,omitempty"`
	Date   *string          `json:"date,omitempty"`
	Notes  *string          `json:"notes,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id,omitempty"`
	CustomerID string          `json:"customer_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Mode       string          `json:"mode"`
	Date       string          `json:"date"`
	Type       string          `json:"type"`
	Notes      string          `json:"notes,omitempty"`
}

// NewPaymentResponse mapea la entidad a la respuesta.
func NewPaymentResponse(p entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Mode:       p.Mode,
		Date:       p.Date,
		Type:       p.Type,
		Notes:      p.Notes,
	}
}

// CatalogEntryResponse entrada del catálogo en respuestas.
type CatalogEntryResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// NewCatalogEntryResponse mapea la entidad a la respuesta.
func NewCatalogEntryResponse(c entity.CatalogEntry) CatalogEntryResponse {
	return CatalogEntryResponse{ID: c.ID, Code: c.Code, Name: c.Name, Kind: c.Kind}
}

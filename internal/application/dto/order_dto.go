package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

// OrderItemRequest línea de pedido (prenda, cantidad, precio unitario).
type OrderItemRequest struct {
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders.
// Si se envían Items, Total se calcula a partir de ellos. Advance > 0 genera el pago "Advance".
type CreateOrderRequest struct {
	CustomerID   string             `json:"customer_id,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	Status       string             `json:"status,omitempty"`
	DeliveryDate string             `json:"delivery_date,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Items        []OrderItemRequest `json:"items,omitempty"`
	Total        decimal.Decimal    `json:"total"`
	Advance      decimal.Decimal    `json:"advance"`
	PaymentMode  string             `json:"payment_mode,omitempty"` // canal del pago inicial
	PaymentDate  string             `json:"payment_date,omitempty"`
}

// UpdateOrderRequest body para PATCH /api/orders/:id (merge: sólo los campos presentes).
type UpdateOrderRequest struct {
	CustomerName *string            `json:"customer_name,omitempty"`
	Status       *string            `json:"status,omitempty"`
	DeliveryDate *string            `json:"delivery_date,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
	Items        []OrderItemRequest `json:"items,omitempty"` // nil = sin cambios
	Total        *decimal.Decimal   `json:"total,omitempty"`
	Advance      *decimal.Decimal   `json:"advance,omitempty"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido en respuestas.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
	Status        string              `json:"status"`
	DeliveryDate  string              `json:"delivery_date,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Advance       decimal.Decimal     `json:"advance"`
	Balance       decimal.Decimal     `json:"balance"`
	PaymentStatus string              `json:"payment_status"`
	CreatedAt     string              `json:"created_at"`
}

// ToItems convierte las líneas del request a entidades.
func ToItems(in []OrderItemRequest) []entity.OrderItem {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.OrderItem{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return out
}

// NewOrderResponse mapea la entidad a la respuesta.
func NewOrderResponse(o entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		Status:        o.Status,
		DeliveryDate:  o.DeliveryDate,
		Notes:         o.Notes,
		Items:         items,
		Total:         o.Total,
		Advance:       o.Advance,
		Balance:       o.Balance,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
	}
}

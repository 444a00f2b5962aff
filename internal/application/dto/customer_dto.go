package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateCustomerRequest body para PATCH /api/customers/:id (sólo los campos presentes).
// Los agregados (total_orders, total_spent) no son editables.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string          `json:"id"`
	DisplayID     string          `json:"display_id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Address       string          `json:"address,omitempty"`
	TotalOrders   int64           `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastOrderDate string          `json:"last_order_date,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// NewCustomerResponse mapea la entidad a la respuesta.
func NewCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		DisplayID:     c.DisplayID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		TotalOrders:   c.TotalOrders,
		TotalSpent:    c.TotalSpent,
		LastOrderDate: c.LastOrderDate,
		CreatedAt:     c.CreatedAt,
	}
}

package dto

import "github.com/shopspring/decimal"

// TopCustomerDTO cliente del widget "mejores clientes".
type TopCustomerDTO struct {
	CustomerID  string          `json:"customer_id"`
	DisplayID   string          `json:"display_id"`
	Name        string          `json:"name"`
	TotalOrders int64           `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Loading          bool             `json:"loading"`
	TodayCollected   decimal.Decimal  `json:"today_collected"`
	MonthlyCollected decimal.Decimal  `json:"monthly_collected"`
	Outstanding      decimal.Decimal  `json:"outstanding"` // suma de saldos positivos
	Customers        int              `json:"customers"`
	Orders           int              `json:"orders"`
	OrdersByStatus   map[string]int   `json:"orders_by_status"`
	TopCustomers     []TopCustomerDTO `json:"top_customers"`
	DateLabel        string           `json:"date_label"`
}

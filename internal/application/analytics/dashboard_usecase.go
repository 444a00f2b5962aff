// Package analytics contiene el resumen del libro para el dashboard: cobros del día y del mes,
// saldo pendiente y mejores clientes. Se calcula sobre las vistas en vivo, sin consultas
// adicionales al almacén.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

const dashboardTopCustomers = 5 // número de clientes en el widget del dashboard

// LedgerViews vistas en vivo de un propietario; ready=false mientras cargan.
type LedgerViews interface {
	Customers(ownerID string) ([]entity.Customer, bool)
	Orders(ownerID string) ([]entity.Order, bool)
	Payments(ownerID string) ([]entity.Payment, bool)
}

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	views LedgerViews
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(views LedgerViews) *DashboardUseCase {
	return &DashboardUseCase{views: views, now: func() time.Time { return time.Now().UTC() }}
}

// GetSummary construye el resumen del propietario.
// Con alguna vista aún cargando devuelve Loading=true y los importes parciales.
func (uc *DashboardUseCase) GetSummary(ownerID string) (*dto.DashboardSummaryDTO, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	customers, customersReady := uc.views.Customers(ownerID)
	orders, ordersReady := uc.views.Orders(ownerID)
	payments, paymentsReady := uc.views.Payments(ownerID)

	now := uc.now()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	// ── Cobros ─────────────────────────────────────────────────────────────────
	todayCollected, monthCollected := decimal.Zero, decimal.Zero
	for _, p := range payments {
		switch {
		case len(p.Date) >= 10 && p.Date[:10] == today:
			todayCollected = todayCollected.Add(p.Amount)
			monthCollected = monthCollected.Add(p.Amount)
		case len(p.Date) >= 7 && p.Date[:7] == month:
			monthCollected = monthCollected.Add(p.Amount)
		}
	}

	// ── Pedidos ────────────────────────────────────────────────────────────────
	outstanding := decimal.Zero
	byStatus := map[string]int{
		entity.PaymentStatusUnpaid:        0,
		entity.PaymentStatusPartiallyPaid: 0,
		entity.PaymentStatusPaid:          0,
	}
	for _, o := range orders {
		byStatus[o.PaymentStatus]++
		if o.Balance.IsPositive() {
			outstanding = outstanding.Add(o.Balance)
		}
	}

	// ── Top clientes por totalSpent ────────────────────────────────────────────
	ranked := append([]entity.Customer(nil), customers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSpent.GreaterThan(ranked[j].TotalSpent)
	})
	if len(ranked) > dashboardTopCustomers {
		ranked = ranked[:dashboardTopCustomers]
	}
	top := make([]dto.TopCustomerDTO, 0, len(ranked))
	for _, c := range ranked {
		top = append(top, dto.TopCustomerDTO{
			CustomerID:  c.ID,
			DisplayID:   c.DisplayID,
			Name:        c.Name,
			TotalOrders: c.TotalOrders,
			TotalSpent:  c.TotalSpent.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		Loading:          !(customersReady && ordersReady && paymentsReady),
		TodayCollected:   todayCollected.Round(2),
		MonthlyCollected: monthCollected.Round(2),
		Outstanding:      outstanding.Round(2),
		Customers:        len(customers),
		Orders:           len(orders),
		OrdersByStatus:   byStatus,
		TopCustomers:     top,
		DateLabel:        monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

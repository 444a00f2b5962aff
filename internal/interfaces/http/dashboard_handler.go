package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve cobros del día y del mes, saldo pendiente y mejores clientes.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(GetOwnerID(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(summary)
}

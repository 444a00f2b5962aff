package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/ledger"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/projection"
)

// PaymentHandler maneja las peticiones HTTP de pagos (protegido).
type PaymentHandler struct {
	uc   *ledger.PaymentUseCase
	live *projection.LiveStore
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *ledger.PaymentUseCase, live *projection.LiveStore) *PaymentHandler {
	return &PaymentHandler{uc: uc, live: live}
}

// Create registra un pago contra un pedido.
// POST /api/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.AddPayment(c.Context(), ownerID, in)
	if err != nil {
		return respondError(c, err, "pedido no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPaymentResponse(*payment))
}

// Update PATCH /api/payments/:id
// Si el pago no existe o el parche no cambia nada responde 200 con applied=false.
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, applied, err := h.uc.UpdatePayment(c.Context(), ownerID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "pago no encontrado")
	}
	resp := fiber.Map{"applied": applied}
	if payment != nil {
		resp["payment"] = dto.NewPaymentResponse(*payment)
	}
	return c.JSON(resp)
}

// Delete DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	deleted, err := h.uc.DeletePayment(c.Context(), ownerID, id)
	if err != nil {
		return respondError(c, err, "pago no encontrado")
	}
	return c.JSON(dto.DeleteResponse{ID: id, Deleted: deleted})
}

// List GET /api/payments?order_id= (vista en vivo, fecha descendente)
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	list, ready := h.live.Payments(ownerID)
	if orderID := c.Query("order_id"); orderID != "" {
		filtered := list[:0]
		for _, p := range list {
			if p.OrderID == orderID {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}
	return c.JSON(dto.ListResponse[dto.PaymentResponse]{
		Loading: !ready,
		Items:   mapList(list, dto.NewPaymentResponse),
	})
}

package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/ledger"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/projection"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/receipt"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	uc      *ledger.OrderUseCase
	receipt *receipt.ReceiptUseCase
	live    *projection.LiveStore
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ledger.OrderUseCase, receiptUC *receipt.ReceiptUseCase, live *projection.LiveStore) *OrderHandler {
	return &OrderHandler{uc: uc, receipt: receiptUC, live: live}
}

// Create crea el pedido, ajusta los agregados del cliente y registra el anticipo.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.CreateOrder(c.Context(), ownerID, in)
	if err != nil {
		return respondError(c, err, "cliente no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(*order))
}

// Update PATCH /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.UpdateOrder(c.Context(), ownerID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "pedido no encontrado")
	}
	return c.JSON(dto.NewOrderResponse(*order))
}

// Delete borra el pedido con sus pagos.
// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	deleted, err := h.uc.DeleteOrder(c.Context(), ownerID, id)
	if err != nil {
		return respondError(c, err, "pedido no encontrado")
	}
	return c.JSON(dto.DeleteResponse{ID: id, Deleted: deleted})
}

// List GET /api/orders (vista en vivo, más recientes primero)
func (h *OrderHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	list, ready := h.live.Orders(ownerID)
	if customerID := c.Query("customer_id"); customerID != "" {
		filtered := list[:0]
		for _, o := range list {
			if o.CustomerID == customerID {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}
	return c.JSON(dto.ListResponse[dto.OrderResponse]{
		Loading: !ready,
		Items:   mapList(list, dto.NewOrderResponse),
	})
}

// GetByID GET /api/orders/:id (desde la vista en vivo)
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	list, _ := h.live.Orders(ownerID)
	for _, o := range list {
		if o.ID == id {
			return c.JSON(dto.NewOrderResponse(o))
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
}

// Receipt descarga el recibo del pedido en PDF.
// GET /api/orders/:id/receipt
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	pdfBytes, filename, err := h.receipt.DownloadReceipt(c.Context(), ownerID, GetTenantName(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "pedido no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

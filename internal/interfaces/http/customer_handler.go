package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/ledger"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/projection"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc   *ledger.CustomerUseCase
	live *projection.LiveStore
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *ledger.CustomerUseCase, live *projection.LiveStore) *CustomerHandler {
	return &CustomerHandler{uc: uc, live: live}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.CreateCustomer(c.Context(), ownerID, GetTenantName(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return respondError(c, err, "cliente no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(*customer))
}

// Update PATCH /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.UpdateCustomer(c.Context(), ownerID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "cliente no encontrado")
	}
	return c.JSON(dto.NewCustomerResponse(*customer))
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	deleted, err := h.uc.DeleteCustomer(c.Context(), ownerID, id)
	if err != nil {
		return respondError(c, err, "cliente no encontrado")
	}
	return c.JSON(dto.DeleteResponse{ID: id, Deleted: deleted})
}

// List GET /api/customers (vista en vivo, por nombre)
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	list, ready := h.live.Customers(ownerID)
	return c.JSON(dto.ListResponse[dto.CustomerResponse]{
		Loading: !ready,
		Items:   mapList(list, dto.NewCustomerResponse),
	})
}

// GetByID GET /api/customers/:id (desde la vista en vivo)
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	list, _ := h.live.Customers(ownerID)
	for _, cu := range list {
		if cu.ID == id {
			return c.JSON(dto.NewCustomerResponse(cu))
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
}

func mapList[E any, R any](in []E, fn func(E) R) []R {
	out := make([]R, 0, len(in))
	for _, e := range in {
		out = append(out, fn(e))
	}
	return out
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/projection"
)

// CatalogHandler catálogo de prendas del propietario (sólo lectura; se auto-repara).
type CatalogHandler struct {
	live *projection.LiveStore
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(live *projection.LiveStore) *CatalogHandler {
	return &CatalogHandler{live: live}
}

// List GET /api/catalog
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	list, ready := h.live.Catalog(ownerID)
	return c.JSON(dto.ListResponse[dto.CatalogEntryResponse]{
		Loading: !ready,
		Items:   mapList(list, dto.NewCatalogEntryResponse),
	})
}
